// Package anim groups engine tweens into batches that start together and
// run a continuation once every member finished.
package anim

import (
	"time"

	"golf-client/engine"
)

// Transition moves Target to To. When From is set the target jumps there
// before the tween is scheduled.
type Transition struct {
	Target   engine.CardHandle
	From     *engine.Point
	To       engine.Point
	Duration time.Duration
	Delay    time.Duration
	Ease     engine.Ease
}

// settleRounds bounds Settle against continuations that keep scheduling work.
const settleRounds = 64

// Sequencer owns every in-flight batch of one view. It is not safe for
// concurrent use; the session goroutine is its only caller.
type Sequencer struct {
	epoch uint64
	live  []*Batch
}

func New() *Sequencer {
	return &Sequencer{}
}

// Prepare starts an empty batch. Nothing moves until Release.
func (s *Sequencer) Prepare() *Batch {
	b := &Batch{seq: s, epoch: s.epoch}
	s.live = append(s.live, b)
	return b
}

// Run schedules a single transition immediately.
func (s *Sequencer) Run(tr Transition) *Step {
	b := s.Prepare()
	st := b.Add(tr)
	b.Release()
	return st
}

// Wiggle rocks h now.
func (s *Sequencer) Wiggle(h engine.CardHandle, spec engine.WiggleSpec) *Step {
	b := s.Prepare()
	st := b.add(func(done func()) engine.Tween {
		spec.OnComplete = done
		return h.Wiggle(spec)
	})
	b.Release()
	return st
}

// Pending counts batches that have not finished.
func (s *Sequencer) Pending() int { return len(s.live) }

// CancelAll stops every live tween and drops every continuation that has not
// yet run, including ones registered later on the cancelled batches.
func (s *Sequencer) CancelAll() {
	s.epoch++
	live := s.live
	s.live = nil
	for _, b := range live {
		for _, st := range b.steps {
			if st.tween != nil {
				st.tween.Stop()
			}
		}
		b.then = nil
	}
}

// Settle jumps every live tween to its end, running continuations in
// order, until nothing is left or settleRounds passes went by.
func (s *Sequencer) Settle() {
	for range settleRounds {
		if len(s.live) == 0 {
			return
		}
		for _, b := range append([]*Batch(nil), s.live...) {
			if !b.released {
				b.Release()
			}
			for _, st := range b.steps {
				if st.done || st.tween == nil {
					continue
				}
				st.tween.Complete()
				// a tween stopped underneath us never calls back
				if !st.done && st.tween.Done() {
					st.finish()
				}
			}
		}
	}
}

func (s *Sequencer) drop(b *Batch) {
	for i, x := range s.live {
		if x == b {
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}

// Batch is a set of steps released together.
type Batch struct {
	seq       *Sequencer
	epoch     uint64
	steps     []*Step
	remaining int
	released  bool
	finished  bool
	then      []func()
}

// Add schedules tr paused inside the batch.
func (b *Batch) Add(tr Transition) *Step {
	if tr.From != nil {
		tr.Target.SetPosition(*tr.From)
	}
	return b.add(func(done func()) engine.Tween {
		return tr.Target.MoveTo(engine.MoveSpec{
			To:         tr.To,
			Duration:   tr.Duration,
			Delay:      tr.Delay,
			Ease:       tr.Ease,
			Paused:     true,
			OnComplete: done,
		})
	})
}

func (b *Batch) add(start func(done func()) engine.Tween) *Step {
	st := &Step{batch: b}
	b.steps = append(b.steps, st)
	b.remaining++
	st.tween = start(st.finish)
	return st
}

// Release resumes every step at once. An empty batch finishes immediately.
func (b *Batch) Release() {
	if b.released || b.epoch != b.seq.epoch {
		return
	}
	b.released = true
	for _, st := range b.steps {
		st.tween.Resume()
	}
	if b.remaining == 0 {
		b.finish()
	}
}

// Then runs fn after every step finished. On a finished batch fn runs now.
func (b *Batch) Then(fn func()) {
	if b.epoch != b.seq.epoch {
		return
	}
	if b.finished {
		fn()
		return
	}
	b.then = append(b.then, fn)
}

// Len is the number of steps.
func (b *Batch) Len() int { return len(b.steps) }

func (b *Batch) finish() {
	if b.finished {
		return
	}
	b.finished = true
	b.seq.drop(b)
	then := b.then
	b.then = nil
	for _, fn := range then {
		if b.epoch != b.seq.epoch {
			return
		}
		fn()
	}
}

// Step is one transition of a batch.
type Step struct {
	batch *Batch
	tween engine.Tween
	done  bool
	then  []func()
}

// Then runs fn when this step finished.
func (st *Step) Then(fn func()) {
	if st.batch.epoch != st.batch.seq.epoch {
		return
	}
	if st.done {
		fn()
		return
	}
	st.then = append(st.then, fn)
}

func (st *Step) finish() {
	b := st.batch
	if st.done || b.epoch != b.seq.epoch {
		return
	}
	st.done = true
	then := st.then
	st.then = nil
	for _, fn := range then {
		fn()
	}
	b.remaining--
	if b.released && b.remaining == 0 {
		b.finish()
	}
}
