package executor

import (
	"github.com/Cyclone1070/devrelay/internal/tool/helper/content"
)

// collector captures combined command output. It keeps the most recent
// maxBytes bytes, so the tail of a verbose tool survives, and replaces binary
// output with a placeholder.
type collector struct {
	buffer    []byte
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
	sampleSize   int
}

func newCollector(maxBytes int, sampleSize int) *collector {
	return &collector{
		maxBytes:   maxBytes,
		sampleSize: sampleSize,
	}
}

func (c *collector) Write(p []byte) (n int, err error) {
	if c.isBinary {
		return len(p), nil
	}

	if c.bytesChecked < c.sampleSize {
		remainingCheck := c.sampleSize - c.bytesChecked
		toCheck := p
		if len(toCheck) > remainingCheck {
			toCheck = toCheck[:remainingCheck]
		}

		if content.IsBinaryContent(toCheck) {
			c.isBinary = true
			c.truncated = true
			c.buffer = nil
			return len(p), nil
		}
		c.bytesChecked += len(toCheck)
	}

	c.buffer = append(c.buffer, p...)
	if overflow := len(c.buffer) - c.maxBytes; overflow > 0 {
		c.buffer = append(c.buffer[:0], c.buffer[overflow:]...)
		c.truncated = true
	}

	return len(p), nil
}

func (c *collector) String() string {
	if c.isBinary {
		return "[Binary Content]"
	}
	return string(c.buffer)
}

func (c *collector) Truncated() bool {
	return c.truncated
}
