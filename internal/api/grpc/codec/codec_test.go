package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type message struct {
	Email string `json:"email"`
	Data  []byte `json:"data,omitempty"`
}

func TestJSON_Registered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestJSON_MarshalUnmarshal(t *testing.T) {
	c := JSON{}

	b, err := c.Marshal(&message{Email: "a@x.com", Data: []byte{1, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com","data":"AQI="}`, string(b))

	var got message
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, []byte{1, 2}, got.Data)
}

func TestJSON_EmptyPayload(t *testing.T) {
	var got message
	assert.NoError(t, JSON{}.Unmarshal(nil, &got))
	assert.Empty(t, got.Email)
}

func TestJSON_Errors(t *testing.T) {
	_, err := JSON{}.Marshal(make(chan int))
	assert.ErrorContains(t, err, "json codec: marshal")

	var got message
	assert.ErrorContains(t, JSON{}.Unmarshal([]byte("{"), &got), "json codec: unmarshal")
}
