package db

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/song"
)

// MaxBatchGet is the most keys DynamoDB accepts in one BatchGetItem.
const MaxBatchGet = 100

var ErrNotFound = errors.New("song not found")

// item is how a song is stored. The chart is kept as its record and
// decoded again on the way out.
type item struct {
	PK       string `dynamodbav:"PK"`
	Title    string `dynamodbav:"Title"`
	Composer string `dynamodbav:"Composer"`
	Style    string `dynamodbav:"Style"`
	Key      string `dynamodbav:"Key"`
	Record   string `dynamodbav:"Record"`
	Bars     int    `dynamodbav:"Bars"`
}

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect opens a session against endpoint, which may be a local
// DynamoDB.
func Connect(endpoint, region, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return New(dynamodb.New(sess), table), nil
}

func (s *Store) PutSong(sg model.Song) error {
	it := item{
		PK:       sg.ID,
		Title:    sg.Title,
		Composer: sg.Composer,
		Style:    sg.Style,
		Key:      sg.Key,
		Record:   sg.Record,
	}
	if it.Record == "" {
		it.Record = song.Record(sg)
	}
	if sg.Music != nil {
		it.Bars = len(sg.Music.Bars)
	}
	av, err := dynamodbattribute.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("marshalling song %s: %w", sg.ID, err)
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (s *Store) PutCollection(c *model.Collection) error {
	for _, sg := range c.Songs {
		if err := s.PutSong(sg); err != nil {
			return err
		}
	}
	return nil
}

// GetSongs looks up songs by ID. Missing IDs are left out of the result.
func (s *Store) GetSongs(ids []string) (map[string]model.Song, error) {
	if len(ids) > MaxBatchGet {
		return nil, fmt.Errorf("cannot get %d songs at once, max is %d", len(ids), MaxBatchGet)
	}

	res := make(map[string]model.Song)

	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}

	out, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, v := range out.Responses[s.table] {
		var it item
		if err := dynamodbattribute.UnmarshalMap(v, &it); err != nil {
			return nil, fmt.Errorf("unmarshalling song: %w", err)
		}
		sg, err := song.ParseSong(it.Record)
		if err != nil {
			return nil, fmt.Errorf("stored song %s: %w", it.PK, err)
		}
		sg.ID = it.PK
		res[it.PK] = sg
	}

	return res, nil
}

func (s *Store) GetSong(id string) (model.Song, error) {
	songs, err := s.GetSongs([]string{id})
	if err != nil {
		return model.Song{}, err
	}
	sg, ok := songs[id]
	if !ok {
		return model.Song{}, ErrNotFound
	}
	return sg, nil
}
