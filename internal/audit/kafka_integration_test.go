//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"bima/pkg/testutil/containers"
)

func TestKafkaSink_AppendProducesEvent(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()

	const topic = "bima.quote-events-test"
	sink, err := NewKafkaSink(ctx, []string{rp.Broker}, topic)
	require.NoError(t, err)
	t.Cleanup(sink.Close)

	sent := Event{
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		UserID:    "agent-1",
		Action:    ActionQuoteCreated,
		Product:   "travel",
		QuoteID:   "TRV123456ABCDEF",
	}
	require.NoError(t, sink.Append(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, sent.QuoteID, string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, sent, got)
}
