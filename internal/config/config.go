package config

import (
	errs "errors"
	"fmt"
	"os"
)

type Config struct {
	Port              string
	DBConnString      string
	ProjectId         string
	StorageBucket     string
	CORSAllowedOrigin string
	TokenSecret       []byte
}

// FromEnv collects every configuration problem before failing, so a
// misconfigured deployment reports all missing variables at once.
func FromEnv() (Config, error) {
	ret := Config{}
	var retErr error

	for name, target := range map[string]*string{
		"DB_CONNECTION_STRING": &ret.DBConnString,
		"PROJECT_ID":           &ret.ProjectId,
		"STORAGE_BUCKET":       &ret.StorageBucket,
	} {
		val, ok := os.LookupEnv(name)
		if !ok || val == "" {
			retErr = errs.Join(retErr, fmt.Errorf("you must define env %s", name))
			continue
		}
		*target = val
	}

	secret, ok := os.LookupEnv("TOKEN_SECRET")
	if !ok || secret == "" {
		retErr = errs.Join(retErr, fmt.Errorf("you must define env TOKEN_SECRET"))
	} else {
		ret.TokenSecret = []byte(secret)
	}

	ret.Port = os.Getenv("PORT")
	if ret.Port == "" {
		ret.Port = "5000"
	}

	ret.CORSAllowedOrigin = os.Getenv("CORS_ALLOWED_ORIGIN")
	if ret.CORSAllowedOrigin == "" {
		ret.CORSAllowedOrigin = "*"
	}

	return ret, retErr
}
