//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"engulf/internal/fold"
)

// FoldJSON folds a JSON document into folded-stack text, grouping array
// elements by groupKeys.
func FoldJSON(doc string, groupKeys []string) (string, error) {
	out, err := fold.FoldText(doc, fold.Options{GroupKeys: groupKeys})
	if err != nil {
		return "", fmt.Errorf("failed to fold JSON: %w", err)
	}
	return out, nil
}

// stringSlice converts a JS array of strings. undefined and null give nil.
func stringSlice(v js.Value) ([]string, error) {
	if v.IsUndefined() || v.IsNull() {
		return nil, nil
	}
	if !js.Global().Get("Array").Call("isArray", v).Bool() {
		return nil, fmt.Errorf("expected an array of strings, got %s", v.Type())
	}

	out := make([]string, v.Length())
	for i := range out {
		item := v.Index(i)
		if item.Type() != js.TypeString {
			return nil, fmt.Errorf("element %d: expected string, got %s", i, item.Type())
		}
		out[i] = item.String()
	}
	return out, nil
}

// promisify wraps a Go function to return a JavaScript Promise
func promisify(fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) any {
			resolve := promiseArgs[0]
			reject := promiseArgs[1]

			go func() {
				result, err := fn(args)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New(err.Error()))
					return
				}
				resolve.Invoke(result)
			}()

			return nil
		})

		return js.Global().Get("Promise").New(handler)
	})
}

func main() {
	js.Global().Set("FoldJSON", promisify(func(args []js.Value) (string, error) {
		if len(args) < 1 || len(args) > 2 {
			return "", fmt.Errorf("FoldJSON: expected 1 or 2 args (json, groupKeys), got %v", len(args))
		}

		var groupKeys []string
		if len(args) == 2 {
			keys, err := stringSlice(args[1])
			if err != nil {
				return "", fmt.Errorf("FoldJSON: groupKeys: %w", err)
			}
			groupKeys = keys
		}

		return FoldJSON(args[0].String(), groupKeys)
	}))

	// Keep the program running
	<-make(chan bool)
}
