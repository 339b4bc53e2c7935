package utils

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewID generates the KSUID string used as the primary key for submission
// entities. KSUIDs sort by creation time, which keeps newest-first listings
// cheap, and can be minted without a database round trip so submissions
// accepted while the store is down still get a real id.
func NewID() string {
	return ksuid.New().String()
}

var (
	txnNodeOnce sync.Once
	txnNode     *snowflake.Node
)

// NewTransactionID generates a snowflake id string for payment transactions,
// using a node id from the SNOWFLAKE_NODE environment variable (node 1 when
// unset or invalid). The node is shared process-wide; its sequence counter
// keeps ids minted within the same millisecond distinct.
func NewTransactionID() string {
	txnNodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		if node, err := snowflake.NewNode(nodeID); err == nil {
			txnNode = node
		}
	})
	if txnNode == nil {
		// a KSUID is still unique when snowflake setup fails
		return NewID()
	}
	return txnNode.Generate().String()
}
