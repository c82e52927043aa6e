package fold

import (
	"github.com/rs/zerolog"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/logging"
	"github.com/logannye/sezkp/internal/sezkp/scheduler"
)

// endpoint is the (Commitment, Pi, FiniteState) triple the driver needs at
// the boundary of every subtree it builds, so the next fold up can check
// interface continuity without re-deriving anything.
type endpoint struct {
	commit CommitPi
	state  core.FiniteState
}

// Ledger is the Balanced-mode driver's O(T) endpoint store: every block's
// replayed FiniteState, indexed by block position. Leaf-level
// (Commitment, Pi) values are not stored; the driver derives them per leaf. Balanced mode trades this memory for never recomputing a
// replay once the blocks are in hand.
type Ledger struct {
	states []core.FiniteState
}

// BuildLedger replays every block up front. This is the Balanced mode's
// only O(T) working-set cost; everything past this point is O(log T) live
// fold state.
func BuildLedger(blocks []*core.BlockSummary) (*Ledger, error) {
	states := make([]core.FiniteState, len(blocks))
	for i, b := range blocks {
		fs, err := core.Replay(b)
		if err != nil {
			return nil, err
		}
		states[i] = fs
	}
	return &Ledger{states: states}, nil
}

// Driver runs the folding pipeline over a fixed block count using the
// pointerless DFS scheduler, so its own live-frame footprint matches the
// scheduler's O(log T) bound regardless of FoldMode. MinRam mode differs
// from Balanced only in how it answers "what is the FiniteState for block
// i": Balanced looks it up in a precomputed Ledger, MinRam recomputes it
// from the block via a small LRU.
type Driver struct {
	opts    DriverOptions
	leaf    Leaf
	fold    Fold
	wrap    Wrap
	blocks  []*core.BlockSummary
	ledger  *Ledger   // non-nil in Balanced mode
	cache   *lruCache // non-nil in MinRam mode
	onWrap  func(depth uint32, root CommitPi, proof any)
	wrapSeq uint32
	log     zerolog.Logger
}

// NewDriver builds a driver over blocks using the given gadgets and
// options. In Balanced mode it eagerly replays every block (see
// BuildLedger); in MinRam mode replay happens lazily, bounded by
// opts.EndpointCache.
func NewDriver(blocks []*core.BlockSummary, leaf Leaf, fold Fold, wrap Wrap, opts DriverOptions) (*Driver, error) {
	d := &Driver{opts: opts, leaf: leaf, fold: fold, wrap: wrap, blocks: blocks, log: logging.Nop}
	switch opts.FoldMode {
	case Balanced:
		ledger, err := BuildLedger(blocks)
		if err != nil {
			return nil, err
		}
		d.ledger = ledger
	case MinRam:
		capacity := opts.EndpointCache
		if capacity == 0 {
			capacity = 1
		}
		d.cache = newLRUCache(int(capacity))
	}
	return d, nil
}

// OnWrap registers a callback invoked every time the driver emits a wrap
// attestation (only if opts.WrapCadence > 0).
func (d *Driver) OnWrap(fn func(depth uint32, root CommitPi, proof any)) {
	d.onWrap = fn
}

// SetLogger attaches a structured logger for leaf/merge/wrap diagnostics.
// A driver built via NewDriver defaults to logging.Nop, so this call is
// optional.
func (d *Driver) SetLogger(log zerolog.Logger) {
	d.log = log
}

func (d *Driver) finiteStateFor(i uint32) core.FiniteState {
	if d.ledger != nil {
		return d.ledger.states[i]
	}
	if fs, ok := d.cache.get(i); ok {
		return fs
	}
	fs, err := core.Replay(d.blocks[i])
	if err != nil {
		panic("fold: driver encountered an invalid block past validation: " + err.Error())
	}
	d.cache.put(i, fs)
	return fs
}

// Run drives the full balanced-tree fold over all blocks and returns the
// root (Commitment, Pi). It uses scheduler.DFS so the live working set is
// O(log T) frames regardless of T, matching both Balanced and MinRam modes'
// memory shape (they differ only in endpoint-recomputation cost, not in
// traversal shape).
func (d *Driver) Run() (CommitPi, error) {
	var stack []endpoint

	scheduler.DFS(uint32(len(d.blocks)),
		func(span core.Interval) {
			i := span.Lo
			fs := d.finiteStateFor(i)
			pi, commit, _ := d.leaf.ProveLeaf(d.blocks[i])
			stack = append(stack, endpoint{commit: CommitPi{C: commit, Pi: pi}, state: fs})
			d.log.Debug().Uint32("block_id", i).Msg("fold: leaf proved")
		},
		func(span core.Interval) {
			if len(stack) < 2 {
				d.log.Warn().Uint32("span_lo", span.Lo).Uint32("span_hi", span.Hi).
					Msg("fold: merge requested with fewer than two live endpoints, skipping")
				return
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			iface := InterfaceWitness{Left: left.state, Right: right.state}
			parentC, parentPi, proof := d.fold.FoldPair(left.commit, right.commit, iface)
			parentState := combineFiniteState(left.state, right.state)
			stack = append(stack, endpoint{commit: CommitPi{C: parentC, Pi: parentPi}, state: parentState})
			d.log.Debug().Uint32("span_lo", span.Lo).Uint32("span_hi", span.Hi).Msg("fold: pair folded")

			if d.opts.WrapCadence > 0 {
				d.wrapSeq++
				if d.wrapSeq%d.opts.WrapCadence == 0 && d.wrap != nil {
					wp := d.wrap.WrapRoot(stack[len(stack)-1].commit)
					d.log.Debug().Uint32("wrap_seq", d.wrapSeq).Msg("fold: wrap emitted")
					if d.onWrap != nil {
						d.onWrap(d.wrapSeq, stack[len(stack)-1].commit, wp)
					}
				}
			}
			_ = proof
		},
	)
	if len(stack) != 1 {
		d.log.Error().Int("stack_depth", len(stack)).Msg("fold: traversal ended without a single root endpoint")
		return CommitPi{}, nil
	}
	return stack[0].commit, nil
}

// combineFiniteState returns core.Combine(left, right): the parent
// endpoint state the driver keeps for a merged subtree.
func combineFiniteState(left, right core.FiniteState) core.FiniteState {
	return core.Combine(left, right)
}

// lruCache is a tiny fixed-capacity LRU keyed by block index, used only by
// MinRam mode to bound the number of live FiniteState recomputations.
type lruCache struct {
	capacity int
	order    []uint32
	data     map[uint32]core.FiniteState
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{capacity: capacity, data: make(map[uint32]core.FiniteState, capacity)}
}

func (c *lruCache) get(k uint32) (core.FiniteState, bool) {
	v, ok := c.data[k]
	if ok {
		c.touch(k)
	}
	return v, ok
}

func (c *lruCache) put(k uint32, v core.FiniteState) {
	if _, exists := c.data[k]; !exists && len(c.data) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.data[k] = v
	c.touch(k)
}

func (c *lruCache) touch(k uint32) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, k)
}
