package lsp

import (
	"github.com/dhamidi/formula/lexer"
	"github.com/dhamidi/formula/parser"
	lru "github.com/hashicorp/golang-lru"
)

const DefaultCacheSize = 4096

// Cache parses formula lines and remembers recent results by line text.
// Every edit re-analyzes the whole document, so most lines are hits.
// It is safe for concurrent use.
type Cache struct {
	parser *parser.Parser
	lines  *lru.ARCCache
}

type parsed struct {
	node parser.Node
	err  error
}

func NewCache(p *parser.Parser, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	lines, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &Cache{parser: p, lines: lines}
}

// Parse parses a single line. Results are shared between callers and must
// not be modified.
func (c *Cache) Parse(line string) (parser.Node, error) {
	if v, ok := c.lines.Get(line); ok {
		r := v.(parsed)
		return r.node, r.err
	}
	node, err := c.parser.Parse(lexer.Tokenize([]byte(line), ""))
	c.lines.Add(line, parsed{node: node, err: err})
	return node, err
}

func (c *Cache) Len() int {
	return c.lines.Len()
}
