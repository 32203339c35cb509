package features

// Business vocabularies are fixed ahead of training; values outside a
// vocabulary fall into the trailing bucket. Country vocabularies are not
// listed here because they are collected from the training set at fit time.
var (
	OccupationVocab = []string{"worker", "employee", "engineer", "teacher", "civil_servant"}
	PurposeVocab    = []string{"bills", "education", "shopping", "medical", "investment"}
	SourceVocab     = []string{"Cash", "Bank Transfer", "Credit Card"}
)

// OtherBucket is the reserved trailing column of every one-hot group.
const OtherBucket = "other"
