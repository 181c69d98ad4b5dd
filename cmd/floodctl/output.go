package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

var (
	outputFormat string
	outputField  string
)

func printResult(result map[string]any) {
	if result == nil {
		return
	}
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			printError(err.Error())
			return
		}
		fmt.Println(string(data))
	case "raw":
		if outputField != "" {
			if v, ok := result[outputField]; ok {
				fmt.Println(formatValue(v))
			}
			return
		}
		for _, k := range sortedKeys(result) {
			fmt.Println(formatValue(result[k]))
		}
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 4, ' ', 0)
		fmt.Fprintln(w, "Key\tValue")
		fmt.Fprintln(w, "---\t-----")
		for _, k := range sortedKeys(result) {
			fmt.Fprintf(w, "%s\t%s\n", k, formatValue(result[k]))
		}
		w.Flush()
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return ""
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

func printSuccess(msg string) {
	fmt.Fprintf(os.Stderr, "Success! %s\n", msg)
}
