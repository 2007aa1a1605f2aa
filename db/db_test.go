package db

import (
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/ireal/song"
	"github.com/stretchr/testify/assert"
)

// fakeDynamo keeps items in memory, keyed by PK.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItem(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	f.items[aws.StringValue(in.Item["PK"].S)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: make(map[string][]map[string]*dynamodb.AttributeValue)}
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			if it, ok := f.items[aws.StringValue(key["PK"].S)]; ok {
				out.Responses[table] = append(out.Responses[table], it)
			}
		}
	}
	return out, nil
}

func TestPutAndGetSongs(t *testing.T) {
	data, err := os.ReadFile("../testdata/work.url")
	if err != nil {
		t.Fatal(err)
	}
	c, err := song.ParseURL(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	fake := newFakeDynamo()
	store := New(fake, "songs")

	assert := assert.New(t)
	assert.Nil(store.PutCollection(c))
	assert.Len(fake.items, 1)

	want := c.Songs[0]
	got, err := store.GetSong(want.ID)
	assert.Nil(err)
	assert.Equal(want, got)

	_, err = store.GetSong("missing")
	assert.ErrorIs(err, ErrNotFound)
}

func TestGetSongsLimits(t *testing.T) {
	store := New(newFakeDynamo(), "songs")

	assert := assert.New(t)
	songs, err := store.GetSongs(nil)
	assert.Nil(err)
	assert.Empty(songs)

	_, err = store.GetSongs(make([]string, MaxBatchGet+1))
	assert.NotNil(err)
}
