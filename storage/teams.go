package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type TeamStorage interface {
	GetByName(ctx context.Context, nameKey string) (*Team, error)
	GetAll(ctx context.Context) ([]*Team, error)
	Create(ctx context.Context, team *Team) error
	FindByEmail(ctx context.Context, emailKey string) (*Team, error)
}

type DynamoTeamStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoTeamStorage) GetByName(ctx context.Context, nameKey string) (*Team, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": nameKey})
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal key for %q: %v", nameKey, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("TEAM: GetItem for %q failed: %v", nameKey, err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrTeamNotFound
	}

	var team Team
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}

func (s *DynamoTeamStorage) GetAll(ctx context.Context) ([]*Team, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("TEAM: scan failed: %v", err)
		return nil, translateError(err)
	}

	var teams []*Team
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &teams); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team list: %v", err)
		return nil, err
	}
	return teams, nil
}

// Create relies on the PK condition for case-insensitive name
// uniqueness; the loser of a duplicate race gets ErrItemAlreadyExists.
func (s *DynamoTeamStorage) Create(ctx context.Context, team *Team) error {
	item, err := attributevalue.MarshalMap(team)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal team: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		return translateError(err)
	}
	return nil
}

// FindByEmail scans for a team with the given lowercase e-mail. This
// read is not transactional with Create, so a narrow duplicate window
// exists between the check and the insert.
func (s *DynamoTeamStorage) FindByEmail(ctx context.Context, emailKey string) (*Team, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("EmailKey = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: emailKey},
		},
	})
	if err != nil {
		logging.Log.Errorf("TEAM: e-mail scan failed: %v", err)
		return nil, translateError(err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var team Team
	if err := attributevalue.UnmarshalMap(out.Items[0], &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}
