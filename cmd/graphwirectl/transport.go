package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	redis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/graphwire/graphwire/engine"
	"github.com/graphwire/graphwire/transport/redisbuf"
)

var pushCmd = &cobra.Command{
	Use:   "push <key>",
	Short: "serialize a JSON value read from stdin and push it to Redis under key",
	Args:  cobra.ExactArgs(1),
	RunE:  runPush,
}

var pullCmd = &cobra.Command{
	Use:   "pull <key>",
	Short: "pull a value from Redis under key, deserialize it, and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPull,
}

func init() {
	pushCmd.PreRunE = bindFlags
	pullCmd.PreRunE = bindFlags
}

func newTransport() (*redisbuf.Transport, error) {
	client := redis.NewClient(&redis.Options{Addr: viper.GetString("redis-addr")})
	return redisbuf.NewTransport(client, redisbuf.WithKeyPrefix(viper.GetString("redis-key-prefix")))
}

func runPush(cmd *cobra.Command, args []string) error {
	key := args[0]
	val, err := readJSONValue(os.Stdin)
	if err != nil {
		return err
	}

	header, buffers, err := engine.Serialize(nil, val)
	if err != nil {
		return errors.Wrap(err, "graphwirectl: serialize")
	}

	transport, err := newTransport()
	if err != nil {
		return errors.Wrap(err, "graphwirectl: connect to redis")
	}

	if err := transport.Push(cmd.Context(), key, header, buffers); err != nil {
		return errors.Wrap(err, "graphwirectl: push")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pushed %q: buffer_count=%d\n", key, header.BufferCount)
	return nil
}

func runPull(cmd *cobra.Command, args []string) error {
	key := args[0]

	transport, err := newTransport()
	if err != nil {
		return errors.Wrap(err, "graphwirectl: connect to redis")
	}

	header, buffers, err := transport.Pull(cmd.Context(), key)
	if err != nil {
		return errors.Wrap(err, "graphwirectl: pull")
	}

	val, err := engine.Deserialize(nil, header, buffers)
	if err != nil {
		return errors.Wrap(err, "graphwirectl: deserialize")
	}

	encoded, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return errors.Wrap(err, "graphwirectl: encode JSON")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
