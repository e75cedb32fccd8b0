package repository

import (
	"context"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const payAccountsUserIDIndex = "user_id-index"

type cardMetadataItem struct {
	Type         string `dynamodbav:"type,omitempty"`
	Brand        string `dynamodbav:"brand,omitempty"`
	Country      string `dynamodbav:"country,omitempty"`
	Last4        string `dynamodbav:"last4,omitempty"`
	Expiry       string `dynamodbav:"expiry,omitempty"`
	WalletMethod string `dynamodbav:"wallet_method,omitempty"`
}

type payAccountItem struct {
	ID                string                 `dynamodbav:"id"`
	UserID            string                 `dynamodbav:"user_id"`
	ServiceName       string                 `dynamodbav:"service_name"`
	Status            string                 `dynamodbav:"status"`
	GatewayCustomerID string                 `dynamodbav:"gateway_customer_id,omitempty"`
	GatewaySourceID   string                 `dynamodbav:"gateway_source_id,omitempty"`
	CardMetadata      *cardMetadataItem      `dynamodbav:"card_metadata,omitempty"`
	OriginalRequest   map[string]interface{} `dynamodbav:"original_request,omitempty"`
	OriginalResponse  string                 `dynamodbav:"original_response,omitempty"`
	CreatedAt         string                 `dynamodbav:"created_at"`
	UpdatedAt         string                 `dynamodbav:"updated_at"`
}

// PayAccountDynamoRepository persists PayAccount entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)

type PayAccountDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPayAccountRepository = (*PayAccountDynamoRepository)(nil)

func NewPayAccountDynamoRepository(ddb DynamoAPI, tableName string) *PayAccountDynamoRepository {
	return &PayAccountDynamoRepository{ddb: ddb, tableName: tableName}
}

// FindApproved returns the most recently created approved account of the user
// for serviceName. Every page is scanned since the filter runs after the key
// condition.
func (r *PayAccountDynamoRepository) FindApproved(ctx context.Context, userID, serviceName string) (entities.PayAccount, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(payAccountsUserIDIndex),
		KeyConditionExpression: aws.String("#user_id = :uid"),
		FilterExpression:       aws.String("#service_name = :svc AND #status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#user_id":      "user_id",
			"#service_name": "service_name",
			"#status":       "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":    &types.AttributeValueMemberS{Value: userID},
			":svc":    &types.AttributeValueMemberS{Value: serviceName},
			":status": &types.AttributeValueMemberS{Value: string(entities.PayAccountStatusApproved)},
		},
	}

	var latest entities.PayAccount
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return entities.PayAccount{}, err
		}
		for _, raw := range out.Items {
			var it payAccountItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return entities.PayAccount{}, err
			}
			a := fromPayAccountItem(it)
			if latest.ID == "" || a.CreatedAt.After(latest.CreatedAt) {
				latest = a
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return latest, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (r *PayAccountDynamoRepository) GetByID(ctx context.Context, id string) (entities.PayAccount, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PayAccount{}, err
	}
	if len(out.Item) == 0 {
		return entities.PayAccount{}, nil
	}

	var it payAccountItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PayAccount{}, err
	}
	return fromPayAccountItem(it), nil
}

// Save writes the whole record. Pay accounts move pending -> approved|rejected
// by overwriting, so the last write carries the final state.
func (r *PayAccountDynamoRepository) Save(ctx context.Context, a entities.PayAccount) (entities.PayAccount, error) {
	av, err := attributevalue.MarshalMap(toPayAccountItem(a))
	if err != nil {
		return entities.PayAccount{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.PayAccount{}, err
	}
	return a, nil
}

func toPayAccountItem(a entities.PayAccount) payAccountItem {
	it := payAccountItem{
		ID:                a.ID,
		UserID:            a.UserID,
		ServiceName:       a.ServiceName,
		Status:            string(a.Status),
		GatewayCustomerID: a.GatewayCustomerID,
		GatewaySourceID:   a.GatewaySourceID,
		OriginalResponse:  rawToString(a.OriginalResponse),
		CreatedAt:         formatTime(a.CreatedAt),
		UpdatedAt:         formatTime(a.UpdatedAt),
	}
	if len(a.OriginalRequest) > 0 {
		it.OriginalRequest = a.OriginalRequest
	}
	if a.CardMetadata != (entities.CardMetadata{}) {
		it.CardMetadata = &cardMetadataItem{
			Type:         a.CardMetadata.Type,
			Brand:        a.CardMetadata.Brand,
			Country:      a.CardMetadata.Country,
			Last4:        a.CardMetadata.Last4,
			Expiry:       a.CardMetadata.Expiry,
			WalletMethod: string(a.CardMetadata.WalletMethod),
		}
	}
	return it
}

func fromPayAccountItem(it payAccountItem) entities.PayAccount {
	a := entities.PayAccount{
		ID:                it.ID,
		UserID:            it.UserID,
		ServiceName:       it.ServiceName,
		Status:            entities.PayAccountStatus(it.Status),
		GatewayCustomerID: it.GatewayCustomerID,
		GatewaySourceID:   it.GatewaySourceID,
		OriginalRequest:   it.OriginalRequest,
		OriginalResponse:  stringToRaw(it.OriginalResponse),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if m := it.CardMetadata; m != nil {
		a.CardMetadata = entities.CardMetadata{
			Type:         m.Type,
			Brand:        m.Brand,
			Country:      m.Country,
			Last4:        m.Last4,
			Expiry:       m.Expiry,
			WalletMethod: entities.WalletMethod(m.WalletMethod),
		}
	}
	return a
}
