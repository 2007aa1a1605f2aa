package parse

import (
	"fmt"

	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/tokenize"
	"go.uber.org/zap"
)

const (
	wideIncrement   = 2
	narrowIncrement = 1
)

type Parser struct {
	log *zap.Logger
}

type Option func(*Parser)

// WithLogger makes the parser log every token at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds bars from tokens with a parser that does not log.
func Parse(tokens []tokenize.Token) (*model.Music, error) {
	return NewParser().Parse(tokens)
}

// Text tokenizes and parses descrambled chart text, keeping the text on
// the result.
func Text(raw string) (*model.Music, error) {
	return NewParser().Text(raw)
}

func (p *Parser) Text(raw string) (*model.Music, error) {
	tokens, err := tokenize.Tokenize(raw)
	if err != nil {
		return nil, fmt.Errorf("tokenizing music: %w", err)
	}
	music, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}
	music.Raw = raw
	return music, nil
}

func (p *Parser) Parse(tokens []tokenize.Token) (*model.Music, error) {
	st := newState()
	for _, tok := range tokens {
		p.log.Debug("token", zap.String("token", tok.Describe()), zap.Int("pos", tok.Pos))
		if err := st.step(tok); err != nil {
			return nil, fmt.Errorf("parsing music: %w", err)
		}
	}
	return st.finish(), nil
}
