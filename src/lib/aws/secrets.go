package aws

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/tidwall/gjson"
)

type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var ErrSecretNotJSON = errors.New("secret is not a JSON object")

// LoadSecretsIntoEnv copies every top-level key of a JSON secret into the
// process environment. Variables that are already set win.
func LoadSecretsIntoEnv(ctx context.Context, c SecretsAPI, secretID string) (int, error) {
	out, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		log.Printf("[Secrets] Error retrieving %s: %s\n", secretID, err.Error())
		return 0, err
	}
	raw := aws.ToString(out.SecretString)
	parsed := gjson.Parse(raw)
	if !gjson.Valid(raw) || !parsed.IsObject() {
		return 0, ErrSecretNotJSON
	}
	loaded := 0
	parsed.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, exists := os.LookupEnv(k); exists {
			return true
		}
		if err := os.Setenv(k, value.String()); err != nil {
			log.Printf("[Secrets] Error setting %s: %s\n", k, err.Error())
			return true
		}
		loaded++
		return true
	})
	return loaded, nil
}
