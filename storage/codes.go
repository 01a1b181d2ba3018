package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type TeamCodeStorage interface {
	Get(ctx context.Context, code string) (*TeamCode, error)
	GetAll(ctx context.Context) ([]*TeamCode, error)
	Create(ctx context.Context, teamCode *TeamCode) error
	AttachTeam(ctx context.Context, code string, teamID string) error
}

type DynamoTeamCodeStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoTeamCodeStorage) Get(ctx context.Context, code string) (*TeamCode, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": code})
	if err != nil {
		logging.Log.Errorf("CODE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CODE: GET storage failed: %v", err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrCodeNotFound
	}

	var tc *TeamCode
	if err := attributevalue.UnmarshalMap(out.Item, &tc); err != nil {
		logging.Log.Errorf("CODE: failed to unmarshal result: %v", err)
		return nil, err
	}
	return tc, nil
}

func (s *DynamoTeamCodeStorage) GetAll(ctx context.Context) ([]*TeamCode, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("CODE: scan failed: %v", err)
		return nil, translateError(err)
	}

	var codes []*TeamCode
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &codes); err != nil {
		logging.Log.Errorf("CODE: failed to unmarshal list: %v", err)
		return nil, err
	}
	return codes, nil
}

// Create inserts the code only if it does not exist yet. Callers retry
// with a fresh token on ErrItemAlreadyExists.
func (s *DynamoTeamCodeStorage) Create(ctx context.Context, teamCode *TeamCode) error {
	if teamCode.CreatedAt.IsZero() {
		teamCode.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(teamCode)
	if err != nil {
		logging.Log.Errorf("CODE: failed to marshal code: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("CODE: PUT storage failed: %v", err)
		return translateError(err)
	}
	return nil
}

// AttachTeam back-fills the owning team ID once the team row exists.
func (s *DynamoTeamCodeStorage) AttachTeam(ctx context.Context, code string, teamID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: code},
		},
		UpdateExpression:          aws.String("SET TeamID = :val"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":val": &types.AttributeValueMemberS{Value: teamID}},
	}
	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		logging.Log.Errorf("CODE: failed to attach team %s to code: %v", teamID, err)
		return translateError(err)
	}
	return nil
}
