package world

import "image"

// CommandKind identifies what a command asks the engine to do.
type CommandKind string

const (
	CommandSpawnBomb CommandKind = "spawn_bomb"
)

// Command is a request submitted by code that must not touch engine state
// directly, such as scripts.
type Command struct {
	Kind   CommandKind
	At     image.Point
	Source string
}

// CommandQueue is a simple FIFO queue.
type CommandQueue struct {
	items []Command
}

// Push adds a command.
func (q *CommandQueue) Push(cmd Command) {
	if q == nil {
		return
	}
	q.items = append(q.items, cmd)
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all commands and clears the queue.
func (q *CommandQueue) Drain() []Command {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
