package pykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
from fastapi import FastAPI

app = FastAPI()


@app.get("/orders/{id}")
def get_order(id: str):
    return None


@app.post("/orders")
async def create_order():
    return None


class OrderService:
    @celery_app.task
    def process(self):
        pass
`

func TestParseDecoratedFunctions(t *testing.T) {
	defs, err := Parse([]byte(sampleSource))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(defs), 3)

	var get, post, class *Def
	for i := range defs {
		switch defs[i].Name {
		case "get_order":
			get = &defs[i]
		case "create_order":
			post = &defs[i]
		case "OrderService":
			class = &defs[i]
		}
	}

	require.NotNil(t, get)
	getDec, ok := FindDecorator(get.Decorators, "get")
	require.True(t, ok)
	require.Len(t, getDec.Args, 1)
	assert.Equal(t, "/orders/{id}", getDec.Args[0])

	require.NotNil(t, post)
	assert.True(t, HasDecorator(post.Decorators, "post"))

	require.NotNil(t, class)
	assert.True(t, class.IsClass)
}

func TestFindDecoratorMissing(t *testing.T) {
	_, ok := FindDecorator(nil, "missing")
	assert.False(t, ok)
}
