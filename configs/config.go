package configs

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/riskforge/payrisk/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port               string  `mapstructure:"PORT" validate:"required"`
	ModelPath          string  `mapstructure:"MODEL_PATH" validate:"required"`
	DatasetPath        string  `mapstructure:"DATASET_PATH" validate:"required"`
	Threshold          float64 `mapstructure:"THRESHOLD" validate:"gt=0,lt=1"`
	TestFraction       float64 `mapstructure:"TEST_FRACTION" validate:"gt=0,lt=1"`
	TrainEpochs        int     `mapstructure:"TRAIN_EPOCHS" validate:"min=1"`
	LearningRate       float64 `mapstructure:"LEARNING_RATE" validate:"gt=0"`
	MinSamples         int     `mapstructure:"MIN_SAMPLES" validate:"min=2"`
	Seed               int64   `mapstructure:"SEED"`
	DatasetSize        int     `mapstructure:"DATASET_SIZE" validate:"min=1"`
	TrackingURL        string  `mapstructure:"TRACKING_URL"`
	TrackingExperiment string  `mapstructure:"TRACKING_EXPERIMENT" validate:"required"`
	KafkaBrokers       string  `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic         string  `mapstructure:"KAFKA_PREDICTION_TOPIC" validate:"required"`
	RateLimitRPS       int     `mapstructure:"RATE_LIMIT_RPS" validate:"min=0"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MODEL_PATH", "payment_failure_model.json")
	viper.SetDefault("DATASET_PATH", "userdata.json")
	viper.SetDefault("THRESHOLD", "0.5")
	viper.SetDefault("TEST_FRACTION", "0.2")
	viper.SetDefault("TRAIN_EPOCHS", "1000")
	viper.SetDefault("LEARNING_RATE", "0.1")
	viper.SetDefault("MIN_SAMPLES", "10")
	viper.SetDefault("SEED", "42")
	viper.SetDefault("DATASET_SIZE", "50")
	viper.SetDefault("TRACKING_EXPERIMENT", "payment_failure_prediction")
	viper.SetDefault("KAFKA_PREDICTION_TOPIC", "payrisk.predictions")
	viper.SetDefault("RATE_LIMIT_RPS", "0")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
