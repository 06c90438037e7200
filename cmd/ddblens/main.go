// ddblens estimates a DynamoDB table's current partition count and the
// throughput ceilings that follow from it.
//
// Partition count is not exposed by the service, but it can be inferred:
//
//  1. Count the open shards of the table's DynamoDB Stream (1:1 mapping of
//     open shards to partitions). This is the accurate method and is used
//     whenever Streams is enabled.
//  2. Otherwise, take the highest of the table's current provisioned
//     capacity, the CloudWatch consumed/provisioned capacity history and the
//     table size, divided by the per-partition limits. Tables never give back
//     partitions once allocated, so the historical maximum is a lower bound.
//
// # Commands
//
//	ddblens analyze    Analyze one table and print the JSON analysis
//	ddblens history    List past analysis runs recorded locally
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	// Remove the subcommand from args so flag parsing works
	os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

	var err error
	switch cmd {
	case "analyze":
		err = runAnalyze()
	case "history":
		err = runHistory()
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("ddblens version %s\n", version)
		return
	default:
		fmt.Fprintf(os.Stderr, "ddblens: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ddblens %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ddblens - DynamoDB partition and throughput estimation

Usage:
  ddblens <command> [flags]

Commands:
  analyze    Analyze one table and print the JSON analysis
  history    List past analysis runs recorded locally

Examples:
  # Summary analysis of a table:
  ddblens analyze --table orders

  # Full analysis including the raw estimation data, saved to a file:
  ddblens analyze --table orders --verbose --save

  # Past runs for the same table:
  ddblens history --table orders --limit 10

The analysis is more accurate when DynamoDB Streams is enabled for the
table; open stream shards map 1:1 to storage partitions. Enabling streams
is outside the scope of this tool.

Configuration (optional):
  Create ddblens.yaml for defaults:

    region: eu-west-1        # AWS region override
    historyDir: ~/.ddblens   # run history database directory
    devLogging: true         # human-readable log output

Run 'ddblens <command> --help' for more information on a command.`)
}
