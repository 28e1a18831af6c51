package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/avc/storefront-gateway/internal/domain"
)

// draftRecord запись черновика в таблице DynamoDB
type draftRecord struct {
	Key       string `dynamodbav:"draft_key"` // PK
	Value     []byte `dynamodbav:"value"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
	ExpiresAt int64  `dynamodbav:"expires_at"` // TTL в секундах эпохи
}

// Store реализует domain.KVStore поверх таблицы DynamoDB.
// Устаревшие черновики удаляет TTL таблицы по атрибуту expires_at.
type Store struct {
	client    DynamoDBAPI
	tableName string
	ttl       time.Duration
	nowFunc   func() time.Time
}

// NewStore создает новый Store
func NewStore(client DynamoDBAPI, tableName string, ttl time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttl:       ttl,
		nowFunc:   time.Now,
	}
}

func (s *Store) keyOf(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"draft_key": &types.AttributeValueMemberS{Value: key},
	}
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &s.tableName,
		Key:            s.keyOf(key),
		ConsistentRead: sdkaws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: failed to get %q: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrKeyNotFound
	}

	var rec draftRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("dynamodb: failed to unmarshal %q: %w", key, err)
	}
	// TTL удаляет записи с задержкой
	if rec.ExpiresAt > 0 && rec.ExpiresAt < s.nowFunc().Unix() {
		return nil, domain.ErrKeyNotFound
	}
	return rec.Value, nil
}

// Set сохраняет значение по ключу
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	now := s.nowFunc()
	rec := draftRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: now.Unix(),
	}
	if s.ttl > 0 {
		rec.ExpiresAt = now.Add(s.ttl).Unix()
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("dynamodb: failed to marshal %q: %w", key, err)
	}

	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb: failed to put %q: %w", key, err)
	}
	return nil
}

// Remove удаляет значение по ключу
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key:       s.keyOf(key),
	}); err != nil {
		return fmt.Errorf("dynamodb: failed to delete %q: %w", key, err)
	}
	return nil
}

// Ping проверяет, что таблица существует и доступна
func (s *Store) Ping(ctx context.Context) error {
	out, err := s.client.DescribeTable(ctx, &dyn.DescribeTableInput{TableName: &s.tableName})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return fmt.Errorf("dynamodb: table %q does not exist: %w", s.tableName, err)
		}
		return fmt.Errorf("dynamodb: failed to describe table %q: %w", s.tableName, err)
	}
	if out.Table != nil && out.Table.TableStatus != types.TableStatusActive && out.Table.TableStatus != types.TableStatusUpdating {
		return fmt.Errorf("dynamodb: table %q is %s", s.tableName, out.Table.TableStatus)
	}
	return nil
}
