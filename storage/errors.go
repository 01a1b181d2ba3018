package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrCodeNotFound = errors.New("team code not found in storage")
var ErrTeamNotFound = errors.New("team not found in storage")
var ErrSessionNotFound = errors.New("session not found in storage")
var ErrSubmissionNotFound = errors.New("submission not found in storage")

// ErrItemAlreadyExists signals a lost race on a conditional insert. The
// uniqueness constraint on the partition key is the only concurrency
// guard in this system.
var ErrItemAlreadyExists = errors.New("item already exists in storage")

// ErrStoreUnavailable wraps DynamoDB call failures that are not data
// conflicts, so handlers can answer 503 instead of 500 and clients know
// a retry may help.
var ErrStoreUnavailable = errors.New("storage unavailable")

func translateError(err error) error {
	var cce *types.ConditionalCheckFailedException
	if errors.As(err, &cce) {
		return ErrItemAlreadyExists
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
