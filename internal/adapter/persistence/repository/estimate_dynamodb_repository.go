package repository

import (
	"context"
	"time"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEstimatesTableName = "estimates"

// lineItemRecord, allocationRecord and scopeRecord mirror the entity shapes
// attribute-by-attribute so the stored document round-trips the full
// snapshot.
type lineItemRecord struct {
	ID          string  `dynamodbav:"id"`
	Category    string  `dynamodbav:"category"`
	Description string  `dynamodbav:"description"`
	Quantity    float64 `dynamodbav:"quantity"`
	UnitCost    float64 `dynamodbav:"unitCost"`
	Total       float64 `dynamodbav:"total"`
}

type allocationRecord struct {
	ID          string  `dynamodbav:"id"`
	LineItemID  string  `dynamodbav:"lineItemId"`
	AllocatedTo string  `dynamodbav:"allocatedTo"`
	Quantity    float64 `dynamodbav:"quantity"`
	Total       float64 `dynamodbav:"total"`
}

type scopeRecord struct {
	Inclusions    []string `dynamodbav:"inclusions"`
	Exclusions    []string `dynamodbav:"exclusions"`
	DeliveryTerms []string `dynamodbav:"deliveryTerms"`
	Comments      string   `dynamodbav:"comments"`
}

type estimateItem struct {
	ID          string             `dynamodbav:"id"`
	ProjectName string             `dynamodbav:"projectName"`
	Address     string             `dynamodbav:"address"`
	Client      string             `dynamodbav:"client"`
	BidDate     string             `dynamodbav:"bidDate"`
	ProjectType string             `dynamodbav:"projectType"`
	Buildings   int                `dynamodbav:"buildings"`
	Units       int                `dynamodbav:"units"`
	LineItems   []lineItemRecord   `dynamodbav:"lineItems"`
	Allocations []allocationRecord `dynamodbav:"allocations"`
	Scope       scopeRecord        `dynamodbav:"scope"`
	Status      string             `dynamodbav:"status"`
	CreatedAt   string             `dynamodbav:"createdAt"`
	UpdatedAt   string             `dynamodbav:"updatedAt"`
}

// EstimateDynamoRepository persists Estimate snapshots in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Each save writes the whole aggregate as one item, so a stored estimate is
// always internally consistent; there is no per-collection write path.
type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.Estimate, error) {
	estimates := []entities.Estimate{}
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		var page []estimateItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		for _, it := range page {
			estimates = append(estimates, fromEstimateItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return estimates, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toEstimateItem(e entities.Estimate) estimateItem {
	items := make([]lineItemRecord, 0, len(e.LineItems))
	for _, it := range e.LineItems {
		items = append(items, lineItemRecord(it))
	}
	allocations := make([]allocationRecord, 0, len(e.Allocations))
	for _, a := range e.Allocations {
		allocations = append(allocations, allocationRecord(a))
	}

	return estimateItem{
		ID:          e.ID,
		ProjectName: e.ProjectName,
		Address:     e.Address,
		Client:      e.Client,
		BidDate:     e.BidDate,
		ProjectType: string(e.ProjectType),
		Buildings:   e.Buildings,
		Units:       e.Units,
		LineItems:   items,
		Allocations: allocations,
		Scope: scopeRecord{
			Inclusions:    e.Scope.Inclusions,
			Exclusions:    e.Scope.Exclusions,
			DeliveryTerms: e.Scope.DeliveryTerms,
			Comments:      e.Scope.Comments,
		},
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	items := make([]entities.LineItem, 0, len(it.LineItems))
	for _, rec := range it.LineItems {
		items = append(items, entities.LineItem(rec))
	}
	allocations := make([]entities.Allocation, 0, len(it.Allocations))
	for _, rec := range it.Allocations {
		allocations = append(allocations, entities.Allocation(rec))
	}

	return entities.Estimate{
		ID:          it.ID,
		ProjectName: it.ProjectName,
		Address:     it.Address,
		Client:      it.Client,
		BidDate:     it.BidDate,
		ProjectType: entities.ProjectType(it.ProjectType),
		Buildings:   it.Buildings,
		Units:       it.Units,
		LineItems:   items,
		Allocations: allocations,
		Scope: entities.ScopeDetails{
			Inclusions:    it.Scope.Inclusions,
			Exclusions:    it.Scope.Exclusions,
			DeliveryTerms: it.Scope.DeliveryTerms,
			Comments:      it.Scope.Comments,
		},
		Status:    entities.EstimateStatus(it.Status),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
