package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId   string = "trace_id"
	RequestId string = "request_id"
	RunId     string = "run_id"
)

// Decision is the thresholded outcome of a scored payment.
type Decision string

const (
	DecisionFail Decision = "fail"
	DecisionOK   Decision = "ok"
)

// Verification flag values accepted on raw KYC records.
const (
	VerificationVerified   string = "Y"
	VerificationUnverified string = "N"
)
