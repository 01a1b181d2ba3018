package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type HealthStorage interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// DynamoHealthStorage probes connectivity with a DescribeTable round
// trip against one of the application tables.
type DynamoHealthStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoHealthStorage) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("HEALTH: storage ping failed: %v", err)
		return 0, translateError(err)
	}
	return time.Since(start), nil
}
