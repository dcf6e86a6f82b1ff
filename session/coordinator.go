package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// OwnerPurger is the slice of store behavior the coordinator needs: cascade
// deletion of every record owned by a given owner id.
type OwnerPurger interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// CascadeResult reports what closing a session removed.
type CascadeResult struct {
	SessionID      string `json:"sessionId"`
	HistoryDeleted int64  `json:"historyDeleted"`
	ClicksDeleted  int64  `json:"clicksDeleted"`
}

// Coordinator runs the periodic sweep that expires idle sessions and cascades
// deletion of their anonymous records. Besides request-path refreshes it is
// the registry's only mutator.
type Coordinator struct {
	registry       *Registry
	history        OwnerPurger
	clicks         OwnerPurger
	interval       time.Duration
	cascadeTimeout time.Duration

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewCoordinator wires the coordinator to the registry and the two stores
// holding owner-scoped records. Query records are untouched by design: they
// carry no owner.
func NewCoordinator(registry *Registry, history, clicks OwnerPurger) *Coordinator {
	return &Coordinator{
		registry:       registry,
		history:        history,
		clicks:         clicks,
		interval:       SweepInterval,
		cascadeTimeout: 10 * time.Second,
	}
}

// Start launches the sweep loop. It errors if the coordinator is already
// running; context cancellation stops the loop just like Stop.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("session coordinator already running")
	}
	c.running = true
	c.done = make(chan struct{})
	c.mu.Unlock()

	log.Printf("Session sweep started (every %s, expiry after %s of inactivity)", c.interval, Timeout)
	go c.run(ctx)
	return nil
}

// Stop halts the sweep loop. Safe to call more than once.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	close(c.done)
	c.running = false
}

func (c *Coordinator) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session sweep stopped (context cancelled).")
			return
		case <-c.done:
			log.Println("Session sweep stopped.")
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Sweep expires every session idle past Timeout. A failed cascade is logged
// and the session stays registered so the next interval retries it
// (policy: session.cascade = retry). The sweep itself never fails.
func (c *Coordinator) Sweep(ctx context.Context) (expired int) {
	for _, id := range c.registry.Expired() {
		res, err := c.closeOne(ctx, id)
		if err != nil {
			log.Printf("ERROR: cascade for expired session failed, retrying next sweep: %v", err)
			continue
		}
		expired++
		log.Printf("Expired session cleaned up: %d history, %d click records removed", res.HistoryDeleted, res.ClicksDeleted)
	}
	return expired
}

// CloseSession runs the cascade immediately for an explicit close request.
// Unlike the sweep, the error surfaces to the caller; the registry entry
// survives a failed cascade either way.
func (c *Coordinator) CloseSession(ctx context.Context, sessionID string) (CascadeResult, error) {
	return c.closeOne(ctx, sessionID)
}

// closeOne deletes the session's durable records first and only then drops
// the registry entry, so no record observably outlives its session. Session
// ids are never reused, which is what makes this ordering safe.
func (c *Coordinator) closeOne(ctx context.Context, sessionID string) (CascadeResult, error) {
	cctx, cancel := context.WithTimeout(ctx, c.cascadeTimeout)
	defer cancel()

	owner := DeriveOwnerID(sessionID)
	res := CascadeResult{SessionID: sessionID}

	n, err := c.history.DeleteByOwner(cctx, owner)
	if err != nil {
		return res, fmt.Errorf("cascade history delete for %s: %w", owner, err)
	}
	res.HistoryDeleted = n

	n, err = c.clicks.DeleteByOwner(cctx, owner)
	if err != nil {
		return res, fmt.Errorf("cascade click delete for %s: %w", owner, err)
	}
	res.ClicksDeleted = n

	c.registry.Remove(sessionID)
	return res, nil
}
