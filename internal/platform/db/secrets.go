package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefers DB_USERNAME/DB_PASSWORD from the environment;
// otherwise the secret named by secretID is fetched from Secrets Manager.
func retrieveCredentials(secretID string) (string, string, error) {
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	if username != "" && password != "" {
		return username, password, nil
	}
	if secretID == "" {
		return "", "", fmt.Errorf("no DB credentials: set DB_USERNAME/DB_PASSWORD or DB_SECRET_ID")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", "", fmt.Errorf("loading AWS config: %w", err)
	}
	client := secretsmanager.NewFromConfig(awsCfg)

	result, err := client.GetSecretValue(context.TODO(), &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("fetching secret %q: %w", secretID, err)
	}

	var secret credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decoding secret %q: %w", secretID, err)
	}
	return secret.Username, secret.Password, nil
}
