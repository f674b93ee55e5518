package generator

import (
	"fmt"
	"sync"
	"time"
)

const (
	timestampBits = 41
	workerIDBits  = 10
	sequenceBits  = 12

	maxWorkerID = (1 << workerIDBits) - 1 // 1023
	maxSequence = (1 << sequenceBits) - 1 // 4095

	workerIDShift  = sequenceBits
	timestampShift = sequenceBits + workerIDBits

	nodeIDBits     = 5
	maxMachineNode = (1 << nodeIDBits) - 1 // 31
)

// DefaultEpoch is 2024-01-01T00:00:00Z in unix milliseconds.
const DefaultEpoch int64 = 1704067200000

// MachineNode splits the 10-bit worker field into a 5-bit machine id and a
// 5-bit node id.
type MachineNode struct {
	MachineID int64 `mapstructure:"machine_id" json:"machine_id"`
	NodeID    int64 `mapstructure:"node_id" json:"node_id"`
}

// NewMachineNode validates both halves, each must be in [0, 31].
func NewMachineNode(machineID, nodeID int64) (MachineNode, error) {
	if machineID < 0 || machineID > maxMachineNode {
		return MachineNode{}, fmt.Errorf("machine_id must be between 0 and %d, got %d", maxMachineNode, machineID)
	}
	if nodeID < 0 || nodeID > maxMachineNode {
		return MachineNode{}, fmt.Errorf("node_id must be between 0 and %d, got %d", maxMachineNode, nodeID)
	}
	return MachineNode{MachineID: machineID, NodeID: nodeID}, nil
}

// WorkerID packs the pair into the snowflake worker field.
func (m MachineNode) WorkerID() int64 {
	return m.MachineID<<nodeIDBits | m.NodeID
}

func (m MachineNode) String() string {
	return fmt.Sprintf("(%d::%d)", m.MachineID, m.NodeID)
}

// SnowflakeOption configures a SnowflakeGenerator.
type SnowflakeOption func(*SnowflakeGenerator)

// WithClock replaces the wall clock.
func WithClock(clock Clock) SnowflakeOption {
	return func(g *SnowflakeGenerator) { g.clock = clock }
}

// WithClockPolicy selects the clock regression policy. Default ClockFail.
func WithClockPolicy(p ClockPolicy) SnowflakeOption {
	return func(g *SnowflakeGenerator) { g.policy = p }
}

// WithMaxClockWait bounds how long Generate may block, both under ClockWait
// and when the sequence of a millisecond is exhausted.
func WithMaxClockWait(d time.Duration) SnowflakeOption {
	return func(g *SnowflakeGenerator) {
		if d > 0 {
			g.maxWait = d
		}
	}
}

// SnowflakeGenerator generates 64-bit snowflake IDs:
// 41 bits of milliseconds since epoch, 10 bits worker id, 12 bits sequence.
type SnowflakeGenerator struct {
	mu       sync.Mutex
	epoch    int64 // custom epoch in ms
	workerID int64 // 10-bit worker id
	sequence int64 // 12-bit sequence
	lastTime int64 // last generation timestamp in ms

	clock   Clock
	policy  ClockPolicy
	maxWait time.Duration
}

// NewSnowflakeGenerator creates a new SnowflakeGenerator.
// workerID must be in range [0, 1023].
// epoch is the custom epoch in unix milliseconds.
func NewSnowflakeGenerator(workerID int64, epoch int64, opts ...SnowflakeOption) (*SnowflakeGenerator, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("worker_id must be between 0 and %d, got %d", maxWorkerID, workerID)
	}
	g := &SnowflakeGenerator{
		epoch:    epoch,
		workerID: workerID,
		clock:    time.Now,
		maxWait:  DefaultMaxClockWait,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock().UnixMilli() < epoch {
		return nil, fmt.Errorf("current time is before custom epoch %d", epoch)
	}
	return g, nil
}

// NewDistributedSnowflakeGenerator creates a generator for a machine/node pair.
func NewDistributedSnowflakeGenerator(node MachineNode, epoch int64, opts ...SnowflakeOption) (*SnowflakeGenerator, error) {
	if _, err := NewMachineNode(node.MachineID, node.NodeID); err != nil {
		return nil, err
	}
	return NewSnowflakeGenerator(node.WorkerID(), epoch, opts...)
}

// Generate returns the next snowflake ID.
func (g *SnowflakeGenerator) Generate() (int64, error) {
	id, _, err := g.GenerateAt()
	return id, err
}

// GenerateAt returns the next snowflake ID and the instant encoded in it.
func (g *SnowflakeGenerator) GenerateAt() (int64, time.Time, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now, err := g.nextTimeLocked()
	if err != nil {
		return 0, time.Time{}, err
	}
	id := ((now - g.epoch) << timestampShift) | (g.workerID << workerIDShift) | g.sequence
	return id, time.UnixMilli(now).UTC(), nil
}

// nextTimeLocked must be called with g.mu held. It settles the timestamp and
// sequence for the next ID.
func (g *SnowflakeGenerator) nextTimeLocked() (int64, error) {
	now := g.clock().UnixMilli()

	if now < g.lastTime {
		if g.policy != ClockWait {
			return 0, &ClockRegressionError{Last: g.lastTime, Now: now}
		}
		var ok bool
		if now, ok = waitFor(g.clock, g.lastTime, g.maxWait); !ok {
			return 0, &ClockRegressionError{Last: g.lastTime, Now: now}
		}
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// Sequence exhausted, wait for next millisecond
			var ok bool
			if now, ok = waitFor(g.clock, g.lastTime+1, g.maxWait); !ok {
				// Keep the millisecond marked as exhausted.
				g.sequence = maxSequence
				return 0, fmt.Errorf("sequence exhausted and clock stalled at %d", now)
			}
		}
	} else {
		g.sequence = 0
	}

	if now < g.epoch {
		return 0, fmt.Errorf("current time is before custom epoch %d", g.epoch)
	}
	if now-g.epoch >= 1<<timestampBits {
		return 0, fmt.Errorf("timestamp %d exceeds %d-bit range of epoch %d", now, timestampBits, g.epoch)
	}

	g.lastTime = now
	return now, nil
}

// Inspect decomposes a snowflake ID.
func (g *SnowflakeGenerator) Inspect(id int64) (*ParseResult, error) {
	if id < 0 {
		return nil, fmt.Errorf("id must be a positive integer")
	}

	ts := (id >> timestampShift) & ((1 << timestampBits) - 1)
	worker := (id >> workerIDShift) & maxWorkerID
	seq := id & maxSequence

	absoluteMs := ts + g.epoch
	if absoluteMs > g.clock().UnixMilli() {
		return nil, fmt.Errorf("timestamp %d is in the future", absoluteMs)
	}

	return &ParseResult{
		TimestampMs: absoluteMs,
		MachineID:   worker >> nodeIDBits,
		NodeID:      worker & maxMachineNode,
		Sequence:    seq,
	}, nil
}
