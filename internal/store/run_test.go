package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

func TestWriteRunAssignsIdentity(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	got, err := s.WriteRun(ctx, createTestRun("c1", OpState))
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-7000-8000-000000000001", got.ID)
	assert.Equal(t, int64(1), got.Seq)
	assert.Equal(t, ir.EngineVersion, got.EngineVersion)
	assert.Equal(t, ir.ResultHash([]byte(`{"norm":1}`)), got.ResultHash)

	read, err := s.GetRun(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, read)
}

func TestWriteRunCanonicalizesResult(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := createTestRun("c1", OpState)
	a.Result = []byte(`{ "b": 1.0, "a": [0.5, -0] }`)
	b := createTestRun("c1", OpState)
	b.Result = []byte(`{"a":[0.5,0],"b":1}`)

	ra, err := s.WriteRun(ctx, a)
	require.NoError(t, err)
	rb, err := s.WriteRun(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, `{"a":[0.5,0],"b":1}`, string(ra.Result))
	assert.Equal(t, ra.ResultHash, rb.ResultHash)
	assert.NotEqual(t, ra.ID, rb.ID)
}

func TestWriteRunRejectsBadInput(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, createTestRun("c1", Operation("measure")))
	assert.Error(t, err)

	_, err = s.WriteRun(ctx, createTestRun("", OpState))
	assert.Error(t, err)

	r := createTestRun("c1", OpState)
	r.Result = []byte(`{"broken":`)
	_, err = s.WriteRun(ctx, r)
	assert.Error(t, err)
}

func TestWriteRunDuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := createTestRun("c1", OpState)
	r.ID = "fixed"
	_, err := s.WriteRun(ctx, r)
	require.NoError(t, err)
	_, err = s.WriteRun(ctx, r)
	assert.Error(t, err)
}

func TestWriteRunDefaultsEmptyResult(t *testing.T) {
	s := createTestStore(t)

	r := createTestRun("c1", OpBench)
	r.Result = nil
	got, err := s.WriteRun(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got.Result))
}

func TestGetRunNotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRunsOrdering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, op := range []Operation{OpState, OpUnitary, OpBench, OpState} {
		_, err := s.WriteRun(ctx, createTestRun("c1", op))
		require.NoError(t, err)
	}

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, int64(i+1), r.Seq)
	}

	last, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, int64(3), last[0].Seq)
	assert.Equal(t, int64(4), last[1].Seq)
	assert.Equal(t, OpBench, last[0].Operation)
}

func TestListRunsEmpty(t *testing.T) {
	s := createTestStore(t)
	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestRunsForCircuit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	idA := ir.MustCircuitID(ir.NewCircuit(1).H(0))
	idB := ir.MustCircuitID(ir.NewCircuit(1).X(0))
	for _, id := range []string{idA, idB, idA} {
		_, err := s.WriteRun(ctx, createTestRun(id, OpState))
		require.NoError(t, err)
	}

	runs, err := s.RunsForCircuit(ctx, idA)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[0].Seq)
	assert.Equal(t, int64(3), runs[1].Seq)

	none, err := s.RunsForCircuit(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestElapsedRoundTrip(t *testing.T) {
	s := createTestStore(t)
	r := createTestRun("c1", OpUnitary)
	r.Elapsed = 1234567 * time.Nanosecond

	got, err := s.WriteRun(context.Background(), r)
	require.NoError(t, err)
	read, err := s.GetRun(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Elapsed, read.Elapsed)
}

func TestEncodeAndDecodeResult(t *testing.T) {
	type payload struct {
		Probs []float64 `json:"probs"`
		Label string    `json:"label"`
	}
	raw, err := EncodeResult(payload{Probs: []float64{0.5, 0.5}, Label: "bell"})
	require.NoError(t, err)
	assert.Equal(t, `{"label":"bell","probs":[0.5,0.5]}`, string(raw))

	var back payload
	require.NoError(t, Run{Result: raw}.DecodeResult(&back))
	assert.Equal(t, "bell", back.Label)

	_, err = EncodeResult(payload{})
	assert.Error(t, err, "nil slices encode to null, which canonical JSON rejects")

	assert.Error(t, Run{Result: json.RawMessage(`[`)}.DecodeResult(&back))
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRunString(t *testing.T) {
	r := Run{Seq: 2, Operation: OpState, CircuitID: "abcdef0123456789", Qubits: 2, Gates: 3, Depth: 2, Elapsed: time.Millisecond}
	assert.Equal(t, "#2 state abcdef012345 q=2 gates=3 depth=2 1ms", r.String())
}
