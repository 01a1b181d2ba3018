package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type SessionStorage interface {
	Get(ctx context.Context, teamCode string) (*OnboardingSession, error)
	Create(ctx context.Context, session *OnboardingSession) error
	Update(ctx context.Context, session *OnboardingSession) error
	Delete(ctx context.Context, teamCode string) error
}

type DynamoSessionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSessionStorage) Get(ctx context.Context, teamCode string) (*OnboardingSession, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": teamCode})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SESSION: GET storage failed: %v", err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrSessionNotFound
	}

	var session OnboardingSession
	if err := attributevalue.UnmarshalMap(out.Item, &session); err != nil {
		logging.Log.Errorf("SESSION: failed to unmarshal session: %v", err)
		return nil, err
	}
	return &session, nil
}

// Create inserts the single session row for a team. Restart paths
// delete the old row first; if two restarts race, the second insert
// loses with ErrItemAlreadyExists.
func (s *DynamoSessionStorage) Create(ctx context.Context, session *OnboardingSession) error {
	item, err := attributevalue.MarshalMap(session)
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal session: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to create session: %v", err)
		return translateError(err)
	}
	return nil
}

func (s *DynamoSessionStorage) Update(ctx context.Context, session *OnboardingSession) error {
	item, err := attributevalue.MarshalMap(session)
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal updated session: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to update session: %v", err)
		return translateError(err)
	}
	return nil
}

func (s *DynamoSessionStorage) Delete(ctx context.Context, teamCode string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": teamCode})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to marshal delete key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SESSION: failed to delete session for %s: %v", teamCode, err)
		return translateError(err)
	}
	return nil
}
