package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shipnote/pkg/usecase"
)

const testPrefix = "repo:owner/repo+type:pr+is:merged"

func TestBuildSearchQueries(t *testing.T) {
	t.Run("single query", func(t *testing.T) {
		queries := usecase.BuildSearchQueries(testPrefix, []string{"abc", "def"}, "+")
		gt.Equal(t, queries, []string{testPrefix + "+abc+def"})
	})

	t.Run("no tokens", func(t *testing.T) {
		queries := usecase.BuildSearchQueries(testPrefix, nil, "+")
		gt.Equal(t, len(queries), 0)
	})

	t.Run("queries stay within limit and keep token order", func(t *testing.T) {
		var tokens []string
		for i := 0; i < 50; i++ {
			tokens = append(tokens, strings.Repeat(string(rune('a'+i%26)), 40))
		}

		queries := usecase.BuildSearchQueries(testPrefix, tokens, "+")
		gt.True(t, len(queries) > 1)

		var restored []string
		for _, q := range queries {
			gt.True(t, len(q) <= 256-len("+"))
			gt.True(t, strings.HasPrefix(q, testPrefix+"+"))
			restored = append(restored, strings.Split(strings.TrimPrefix(q, testPrefix+"+"), "+")...)
		}
		gt.Equal(t, restored, tokens)
	})

	t.Run("repeated short hash splits at the size boundary", func(t *testing.T) {
		tokens := make([]string, 100)
		for i := range tokens {
			tokens[i] = "abc1234"
		}

		queries := usecase.BuildSearchQueries(testPrefix, tokens, "+")

		// prefix (33) + 27 * "+abc1234" (8) = 249 <= 255, a 28th token would exceed it
		gt.Equal(t, len(queries), 4)
		gt.Equal(t, len(queries[0]), len(testPrefix)+27*8)
		gt.Equal(t, strings.Count(queries[0], "abc1234"), 27)
		gt.Equal(t, strings.Count(queries[1], "abc1234"), 27)
		gt.Equal(t, strings.Count(queries[2], "abc1234"), 27)
		gt.Equal(t, strings.Count(queries[3], "abc1234"), 19)

		// deterministic
		gt.Equal(t, usecase.BuildSearchQueries(testPrefix, tokens, "+"), queries)
	})

	t.Run("over-long token gets its own query", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		queries := usecase.BuildSearchQueries(testPrefix, []string{"abc", long, "def"}, "+")
		gt.Equal(t, queries, []string{
			testPrefix + "+abc",
			testPrefix + "+" + long,
			testPrefix + "+def",
		})
	})
}
