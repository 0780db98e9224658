package storage

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client DynamoStore uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore keeps one item per key in a table whose partition key is the
// string attribute "pk"; the blob lives in the string attribute "value".
type DynamoStore struct {
	client    DynamoAPI
	table     string
	namespace string
}

func NewDynamoStore(client DynamoAPI, table, namespace string) *DynamoStore {
	return &DynamoStore{client: client, table: table, namespace: namespace}
}

type dynamoItem struct {
	PK    string `dynamodbav:"pk"`
	Value string `dynamodbav:"value"`
}

// NewDynamoClient loads the default AWS config. AWS_ENDPOINT points the client
// at LocalStack or DynamoDB Local, which accept the static "test" key pair
// when no credentials are configured.
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	endpoint := os.Getenv("AWS_ENDPOINT")
	var opts []func(*config.LoadOptions) error
	if endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	}), nil
}

func (d *DynamoStore) pk(key string) string {
	if d.namespace != "" {
		return d.namespace + ":" + key
	}
	return key
}

func (d *DynamoStore) keyOf(key string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(map[string]string{"pk": d.pk(key)})
}

func (d *DynamoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := d.keyOf(key)
	if err != nil {
		return nil, false, err
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      sdkaws.String(d.table),
		Key:            k,
		ConsistentRead: sdkaws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("dynamodb get %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	if _, ok := out.Item["value"].(*types.AttributeValueMemberS); !ok {
		return nil, false, fmt.Errorf("dynamodb item %s has no string value", key)
	}
	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("dynamodb item %s: %w", key, err)
	}
	return []byte(item.Value), true, nil
}

func (d *DynamoStore) Set(ctx context.Context, key string, value []byte) error {
	item, err := attributevalue.MarshalMap(dynamoItem{PK: d.pk(key), Value: string(value)})
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: sdkaws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", key, err)
	}
	return nil
}

func (d *DynamoStore) Delete(ctx context.Context, key string) error {
	k, err := d.keyOf(key)
	if err != nil {
		return err
	}
	_, err = d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: sdkaws.String(d.table),
		Key:       k,
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete %s: %w", key, err)
	}
	return nil
}
