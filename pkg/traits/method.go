package traits

import (
	"fmt"
	"sync/atomic"
)

// Owner identifies the declaration, or the strategy resolution, that produced
// a MethodBody. Owners are compared by value and are only used to decide
// whether two bodies with the same name collide.
type Owner uint64

// lastOwner is the most recently minted Owner.
var lastOwner atomic.Uint64

// NewOwner mints an Owner that no other call has returned.
func NewOwner() Owner {
	return Owner(lastOwner.Add(1))
}

// String returns a short printable form such as "owner#12".
func (o Owner) String() string {
	return fmt.Sprintf("owner#%d", uint64(o))
}

// Block is the optional trailing callable passed along with a message.
type Block func(args ...any) (any, error)

// Func is the calling convention for every method body: the receiving
// instance, positional arguments and an optional block.
type Func func(self *Instance, args []any, block Block) (any, error)

// MethodBody is a callable unit of behavior tagged with its owner. A body is
// never mutated after creation; composed traits share bodies by pointer.
type MethodBody struct {
	fn    Func
	owner Owner
}

// NewMethodBody wraps fn as a body owned by owner.
func NewMethodBody(owner Owner, fn Func) *MethodBody {
	return &MethodBody{fn: fn, owner: owner}
}

// Owner returns the identity of the declaration that produced the body.
func (m *MethodBody) Owner() Owner {
	return m.owner
}

// Call invokes the body on self. Errors from the underlying function are
// returned unchanged.
func (m *MethodBody) Call(self *Instance, args []any, block Block) (any, error) {
	return m.fn(self, args, block)
}

// Entry is a named method body: the unit strategies receive and return.
type Entry struct {
	Name string
	Body *MethodBody
}

// Const returns a Func that ignores its arguments and returns v.
func Const(v any) Func {
	return func(*Instance, []any, Block) (any, error) {
		return v, nil
	}
}
