package env

import (
	"fmt"
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	UserSecretKey    = "USER_SECRET"
	AdminSecretKey   = "ADMIN_SECRET"
	PartyRedisURL    = "PARTY_REDIS_URL"
	PartyRedisPass   = "PARTY_REDIS_PASS"
	WebUrl           = "WEB_URL"
	LogLevel         = "LOG_LEVEL"
)

// Validate checks the variables a server cannot start without. It is called
// from main rather than from init so importing this package has no side
// effects in tests.
func Validate() error {
	required := []string{
		AWSRegion,
		AWSID,
		AWSSecret,
		UserSecretKey,
		AdminSecretKey,
		PartyRedisURL,
		WebUrl,
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			return fmt.Errorf("env: required environment variable not set: %s", key)
		}
	}
	return nil
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
