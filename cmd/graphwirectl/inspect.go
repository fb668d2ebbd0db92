package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/graphwire/graphwire/codec"
	"github.com/graphwire/graphwire/engine"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "serialize a JSON value read from stdin and print its header tree",
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	val, err := readJSONValue(os.Stdin)
	if err != nil {
		return err
	}

	header, buffers, err := engine.Serialize(nil, val)
	if err != nil {
		return errors.Wrap(err, "graphwirectl: serialize")
	}

	out := cmd.OutOrStdout()
	printNode(out, header.Root, 0)
	fmt.Fprintf(out, "buffers: %d\n", len(buffers))
	for i, b := range buffers {
		if raw, ok := b.([]byte); ok {
			fmt.Fprintf(out, "  [%d] %d bytes\n", i, len(raw))
		}
	}
	return nil
}

func printNode(w io.Writer, node codec.WireNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sserializer_id=%d final=%v num_subs=%d", indent, node.SerializerID, node.Final, node.NumSubs)
	if node.HasID {
		fmt.Fprintf(w, " obj_id=%d", node.ObjID)
	}
	fmt.Fprintln(w)
	for _, child := range node.Children {
		printNode(w, child, depth+1)
	}
}
