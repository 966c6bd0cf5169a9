package kafkain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cart_service/internal/core/domain"
	"cart_service/internal/ports/inbound"

	"github.com/segmentio/kafka-go"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	fetchErrs []error
	committed []int64
	drained   chan struct{}
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		f.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(f.msgs) > 0 {
		m := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()

	select {
	case <-f.drained:
	default:
		close(f.drained)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

type recordingUseCase struct {
	mu      sync.Mutex
	applied []domain.Command
}

func (r *recordingUseCase) Cart(context.Context) domain.Cart { return nil }

func (r *recordingUseCase) AddProduct(context.Context, int) {}

func (r *recordingUseCase) RemoveProduct(context.Context, int) {}

func (r *recordingUseCase) UpdateProductAmount(context.Context, inbound.UpdateProductAmount) {}

func (r *recordingUseCase) Apply(_ context.Context, cmd domain.Command) {
	r.mu.Lock()
	r.applied = append(r.applied, cmd)
	r.mu.Unlock()
}

func TestConsumerAppliesAndCommits(t *testing.T) {
	reader := &fakeReader{
		fetchErrs: []error{errors.New("broker unavailable")},
		msgs: []kafka.Message{
			{Offset: 1, Value: []byte(`{"op":"add","product_id":1}`)},
			{Offset: 2, Value: []byte(`{"op":"explode","product_id":1}`)},
			{Offset: 3, Value: []byte(`not json`)},
			{Offset: 4, Value: []byte(`{"op":"update","product_id":1,"amount":3}`)},
		},
		drained: make(chan struct{}),
	}
	uc := &recordingUseCase{}
	c := &Consumer{reader: reader, uc: uc, retryDelay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	<-done

	want := []domain.Command{
		{Op: domain.OpAdd, ProductID: 1},
		{Op: domain.OpUpdate, ProductID: 1, Amount: 3},
	}
	if len(uc.applied) != len(want) {
		t.Fatalf("expected %d applied, got %+v", len(want), uc.applied)
	}
	for i := range want {
		if uc.applied[i] != want[i] {
			t.Fatalf("applied[%d] = %+v, want %+v", i, uc.applied[i], want[i])
		}
	}
	if len(reader.committed) != 4 {
		t.Fatalf("expected all 4 offsets committed, got %v", reader.committed)
	}
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"add", `{"op":"add","product_id":3}`, true},
		{"remove", `{"op":"remove","product_id":3}`, true},
		{"update", `{"op":"update","product_id":3,"amount":2}`, true},
		{"unknown field", `{"op":"add","product_id":3,"user":"x"}`, false},
		{"unknown op", `{"op":"clear","product_id":3}`, false},
		{"missing id", `{"op":"add"}`, false},
		{"garbage", `]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand([]byte(tt.raw))
			if tt.ok != (err == nil) {
				t.Fatalf("ok=%v, err=%v", tt.ok, err)
			}
		})
	}
}
