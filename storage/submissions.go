package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type SubmissionStorage interface {
	Get(ctx context.Context, teamCode string, includeFileContent bool) (*Submission, error)
	Create(ctx context.Context, submission *Submission) error
	Exists(ctx context.Context, teamCode string) (bool, error)
}

type DynamoSubmissionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

// Get loads a team's submission. Unless includeFileContent is set, the
// file blobs are projected away and only the FileNames index comes back.
func (s *DynamoSubmissionStorage) Get(ctx context.Context, teamCode string, includeFileContent bool) (*Submission, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": teamCode})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal key: %v", err)
		return nil, err
	}

	input := &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	}
	if !includeFileContent {
		input.ProjectionExpression = aws.String("PK, QuestionType, Explanation, FileNames, SubmittedAt")
	}

	out, err := s.Client.GetItem(ctx, input)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: GET storage failed: %v", err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrSubmissionNotFound
	}

	var submission Submission
	if err := attributevalue.UnmarshalMap(out.Item, &submission); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submission: %v", err)
		return nil, err
	}
	return &submission, nil
}

// Create inserts the one allowed submission per team. A second insert
// fails the key condition and must surface as a conflict, never an
// overwrite.
func (s *DynamoSubmissionStorage) Create(ctx context.Context, submission *Submission) error {
	item, err := attributevalue.MarshalMap(submission)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal submission: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to create submission: %v", err)
		return translateError(err)
	}
	return nil
}

// Exists is the lightweight probe used to reconcile "submission exists
// but session not completed" drift without loading the payload.
func (s *DynamoSubmissionStorage) Exists(ctx context.Context, teamCode string) (bool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": teamCode})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal probe key: %v", err)
		return false, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            &s.TableName,
		Key:                  key,
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: existence probe failed: %v", err)
		return false, translateError(err)
	}
	return out.Item != nil, nil
}
