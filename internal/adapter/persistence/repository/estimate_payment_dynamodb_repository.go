package repository

import (
	"context"
	"sort"

	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultPaymentsTableName = "payments"
	paymentsEstimateIDIndex  = "estimate_id-index"
)

type estimatePaymentItem struct {
	ID                 string         `dynamodbav:"id"`
	EstimateID         string         `dynamodbav:"estimate_id"`
	UserID             string         `dynamodbav:"user_id"`
	Amount             float64        `dynamodbav:"amount"`
	Date               string         `dynamodbav:"date"`
	Status             string         `dynamodbav:"status"`
	ProviderPayload    map[string]any `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string         `dynamodbav:"provider_payload_raw,omitempty"`
}

// EstimatePaymentDynamoRepository persists deposits in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: estimate_id-index (PK: estimate_id)
type EstimatePaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEstimatePaymentRepository = (*EstimatePaymentDynamoRepository)(nil)

func NewEstimatePaymentDynamoRepository(ddb DynamoAPI, tableName string) *EstimatePaymentDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentsTableName
	}
	return &EstimatePaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EstimatePaymentDynamoRepository) Create(ctx context.Context, p entities.EstimatePayment) (entities.EstimatePayment, error) {
	av, err := attributevalue.MarshalMap(toEstimatePaymentItem(p))
	if err != nil {
		return entities.EstimatePayment{}, err
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
		return entities.EstimatePayment{}, err
	}
	return p, nil
}

func (r *EstimatePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.EstimatePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.EstimatePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.EstimatePayment{}, nil
	}

	var it estimatePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.EstimatePayment{}, err
	}
	return fromEstimatePaymentItem(it), nil
}

func (r *EstimatePaymentDynamoRepository) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.EstimatePayment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsEstimateIDIndex),
		KeyConditionExpression: aws.String("estimate_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: estimateID},
		},
	})

	items := []entities.EstimatePayment{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it estimatePaymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromEstimatePaymentItem(it))
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

func toEstimatePaymentItem(p entities.EstimatePayment) estimatePaymentItem {
	return estimatePaymentItem{
		ID:                 p.ID,
		EstimateID:         p.EstimateID,
		UserID:             p.UserID,
		Amount:             p.Amount,
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromEstimatePaymentItem(it estimatePaymentItem) entities.EstimatePayment {
	return entities.EstimatePayment{
		ID:                 it.ID,
		EstimateID:         it.EstimateID,
		UserID:             it.UserID,
		Amount:             it.Amount,
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
