package engine

import "github.com/cockroachdb/errors"

// MaxDepth bounds the explicit traversal stack used by Serialize and
// Deserialize. It exists as a sanity backstop against pathological or
// adversarial input, not because the explicit-stack design itself has
// any real depth limitation the way host recursion would.
const MaxDepth = 1 << 20

// RecursionDepthExceededError is raised when a single Serialize or
// Deserialize call's explicit stack would grow past MaxDepth frames.
var RecursionDepthExceededError = errors.New("engine: recursion depth exceeded")
