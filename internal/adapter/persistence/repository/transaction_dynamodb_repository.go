package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type transactionItem struct {
	ID                   string                 `dynamodbav:"id"`
	Amount               string                 `dynamodbav:"amount"`
	Currency             string                 `dynamodbav:"currency"`
	Description          string                 `dynamodbav:"description,omitempty"`
	Status               string                 `dynamodbav:"status"`
	ChargeAttempts       int                    `dynamodbav:"charge_attempts,omitempty"`
	PayAccountID         string                 `dynamodbav:"pay_account_id,omitempty"`
	GatewayTransactionID string                 `dynamodbav:"gateway_transaction_id,omitempty"`
	GatewayCustomerID    string                 `dynamodbav:"gateway_customer_id,omitempty"`
	GatewaySourceID      string                 `dynamodbav:"gateway_source_id,omitempty"`
	ChargeRequest        map[string]interface{} `dynamodbav:"charge_request,omitempty"`
	ChargeResponse       string                 `dynamodbav:"charge_response,omitempty"`
	CreatedAt            string                 `dynamodbav:"created_at"`
	UpdatedAt            string                 `dynamodbav:"updated_at"`
}

// TransactionDynamoRepository persists Transaction entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type TransactionDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb DynamoAPI, tableName string) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	av, err := attributevalue.MarshalMap(toTransactionItem(t))
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

// ClaimForCharge moves a pending or failed transaction to processing and
// bumps its attempt counter. A processing claim whose holder went silent
// before staleBefore can be taken over. A zero Transaction means the claim
// was refused: missing, charged or being charged.
func (r *TransactionDynamoRepository) ClaimForCharge(ctx context.Context, id string, staleBefore time.Time) (entities.Transaction, error) {
	return r.update(ctx, id, func(now string) (transactionUpdate, error) {
		return claimUpdate(now, time.Now().UTC().Unix(), staleBefore.UTC().Unix()), nil
	})
}

func claimUpdate(now string, claimedAt, staleBefore int64) transactionUpdate {
	return transactionUpdate{
		expr: "SET #status = :processing, #updated_at = :updated_at, #claimed_at = :claimed_at ADD #charge_attempts :one",
		cond: "#status IN (:pending, :failed) OR (#status = :processing AND #claimed_at < :stale_before)",
		values: map[string]types.AttributeValue{
			":processing":   &types.AttributeValueMemberS{Value: string(entities.TransactionStatusProcessing)},
			":pending":      &types.AttributeValueMemberS{Value: string(entities.TransactionStatusPending)},
			":failed":       &types.AttributeValueMemberS{Value: string(entities.TransactionStatusFailed)},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
			":claimed_at":   &types.AttributeValueMemberN{Value: strconv.FormatInt(claimedAt, 10)},
			":stale_before": &types.AttributeValueMemberN{Value: strconv.FormatInt(staleBefore, 10)},
			":one":          &types.AttributeValueMemberN{Value: "1"},
		},
		names: map[string]string{
			"#status":          "status",
			"#updated_at":      "updated_at",
			"#claimed_at":      "claimed_at",
			"#charge_attempts": "charge_attempts",
		},
	}
}

// SaveChargeOutcome writes status and charge data onto a transaction claimed
// by ClaimForCharge. The write only lands while t.ChargeAttempts is still the
// current claim; otherwise a zero Transaction is returned. Empty gateway
// fields are left out of the update instead of being stored as empty strings.
func (r *TransactionDynamoRepository) SaveChargeOutcome(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	return r.update(ctx, t.ID, func(now string) (transactionUpdate, error) {
		return chargeOutcomeUpdate(t, now)
	})
}

func chargeOutcomeUpdate(t entities.Transaction, now string) (transactionUpdate, error) {
	u := transactionUpdate{
		expr: "SET #status = :status, #updated_at = :updated_at REMOVE #claimed_at",
		cond: "#status = :processing AND #charge_attempts = :attempt",
		values: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(t.Status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":processing": &types.AttributeValueMemberS{Value: string(entities.TransactionStatusProcessing)},
			":attempt":    &types.AttributeValueMemberN{Value: strconv.Itoa(t.ChargeAttempts)},
		},
		names: map[string]string{
			"#status":          "status",
			"#updated_at":      "updated_at",
			"#claimed_at":      "claimed_at",
			"#charge_attempts": "charge_attempts",
		},
	}

	var set []string
	setString := func(attr, value string) {
		if value == "" {
			return
		}
		set = append(set, "#"+attr+" = :"+attr)
		u.values[":"+attr] = &types.AttributeValueMemberS{Value: value}
		u.names["#"+attr] = attr
	}
	setString("pay_account_id", t.PayAccountID)
	setString("gateway_transaction_id", t.GatewayTransactionID)
	setString("gateway_customer_id", t.GatewayCustomerID)
	setString("gateway_source_id", t.GatewaySourceID)
	setString("charge_response", rawToString(t.ChargeResponse))

	if len(t.ChargeRequest) > 0 {
		av, err := attributevalue.Marshal(t.ChargeRequest)
		if err != nil {
			return transactionUpdate{}, err
		}
		set = append(set, "#charge_request = :charge_request")
		u.values[":charge_request"] = av
		u.names["#charge_request"] = "charge_request"
	}
	if len(set) > 0 {
		u.expr = "SET #status = :status, #updated_at = :updated_at, " + strings.Join(set, ", ") + " REMOVE #claimed_at"
	}
	return u, nil
}

// transactionUpdate is one UpdateItem call. cond is ANDed with the existence
// check on the key.
type transactionUpdate struct {
	expr   string
	cond   string
	values map[string]types.AttributeValue
	names  map[string]string
}

func (r *TransactionDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (transactionUpdate, error),
) (entities.Transaction, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	u, err := build(now)
	if err != nil {
		return entities.Transaction{}, err
	}

	cond := "attribute_exists(#id)"
	if u.cond != "" {
		cond += " AND (" + u.cond + ")"
	}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(u.expr),
		ExpressionAttributeValues: u.values,
		ExpressionAttributeNames:  mergeNames(u.names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Transaction{}, nil
		}
		return entities.Transaction{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Transaction{}, nil
	}
	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func toTransactionItem(t entities.Transaction) transactionItem {
	it := transactionItem{
		ID:                   t.ID,
		Amount:               floatToString(t.Amount),
		Currency:             t.Currency,
		Description:          t.Description,
		Status:               string(t.Status),
		ChargeAttempts:       t.ChargeAttempts,
		PayAccountID:         t.PayAccountID,
		GatewayTransactionID: t.GatewayTransactionID,
		GatewayCustomerID:    t.GatewayCustomerID,
		GatewaySourceID:      t.GatewaySourceID,
		ChargeResponse:       rawToString(t.ChargeResponse),
		CreatedAt:            formatTime(t.CreatedAt),
		UpdatedAt:            formatTime(t.UpdatedAt),
	}
	if len(t.ChargeRequest) > 0 {
		it.ChargeRequest = t.ChargeRequest
	}
	return it
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	return entities.Transaction{
		ID:                   it.ID,
		Amount:               amount,
		Currency:             it.Currency,
		Description:          it.Description,
		Status:               entities.TransactionStatus(it.Status),
		ChargeAttempts:       it.ChargeAttempts,
		PayAccountID:         it.PayAccountID,
		GatewayTransactionID: it.GatewayTransactionID,
		GatewayCustomerID:    it.GatewayCustomerID,
		GatewaySourceID:      it.GatewaySourceID,
		ChargeRequest:        it.ChargeRequest,
		ChargeResponse:       stringToRaw(it.ChargeResponse),
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
