//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"perfscore/pkg/engine"
	"perfscore/pkg/parser"
	"perfscore/pkg/report"
	"perfscore/pkg/schema"
)

// NOTE: Each Web Worker loads its own WASM instance. Global state is NOT shared
// across workers. The main worker runs perfAnalyze; helper workers receive
// the name mapping via perfLoadMapping and only resolve names.

var (
	globalAnalysis *report.Analysis
	globalResolver *engine.Resolver
)

func errorJSON(msg string) string {
	errJSON, _ := json.Marshal(map[string]string{"error": msg})
	return string(errJSON)
}

func bytesArg(v js.Value) []byte {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	data := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(data, v)
	return data
}

// analyze handles the perfAnalyze JS function call.
// args[0], args[1] = Uint8Array + filename of the sales ledger
// args[2], args[3] = Uint8Array (or null) + filename of the internet report
// args[4], args[5] = Uint8Array (or null) + filename of the applications report
// args[6] = bool (include terminated employees)
// Returns: JSON of the whole analysis, or {"error": ...}
func analyze(this js.Value, args []js.Value) interface{} {
	if len(args) < 7 {
		return errorJSON("perfAnalyze requires 7 arguments")
	}

	salesTable, err := parser.ReadTableBytes(bytesArg(args[0]), args[1].String(), "")
	if err != nil {
		return errorJSON(err.Error())
	}
	salesRows, warnings := parser.SalesRows(salesTable)
	in := report.Input{Sales: salesRows}
	in.Diagnostics = parser.WarningDiagnostics(args[1].String(), append(salesTable.Warnings, warnings...))

	for _, src := range []struct {
		data []byte
		name js.Value
		ds   schema.Dataset
		dst  *[]schema.MonitoringRow
	}{
		{bytesArg(args[2]), args[3], schema.DatasetInternet, &in.Internet},
		{bytesArg(args[4]), args[5], schema.DatasetApplications, &in.Applications},
	} {
		if src.data == nil {
			continue
		}
		table, err := parser.ReadTableBytes(src.data, src.name.String(), src.ds)
		if err != nil {
			return errorJSON(err.Error())
		}
		rows, err := parser.MonitoringRows(table, src.ds, src.name.String())
		if err != nil {
			return errorJSON(err.Error())
		}
		*src.dst = rows
		in.Diagnostics = append(in.Diagnostics, parser.WarningDiagnostics(src.name.String(), table.Warnings)...)
	}

	opts := report.DefaultOptions()
	opts.IncludeTerminated = args[6].Bool()
	globalAnalysis = report.Analyze(in, opts)
	globalResolver = globalAnalysis.Resolver()

	resultJSON, _ := json.Marshal(globalAnalysis)
	return string(resultJSON)
}

// findVariants handles perfFindVariants(name, dataset).
// PRECONDITION: perfAnalyze must have been called first in this worker.
func findVariants(this js.Value, args []js.Value) interface{} {
	if globalAnalysis == nil {
		return errorJSON("no analysis loaded (call perfAnalyze() first)")
	}
	if len(args) < 2 {
		return errorJSON("perfFindVariants requires 2 arguments: name and dataset")
	}
	variants := globalAnalysis.FindVariants(args[0].String(), schema.Dataset(args[1].String()))
	resultJSON, _ := json.Marshal(variants)
	return string(resultJSON)
}

// cityOf handles perfCityOf(name).
func cityOf(this js.Value, args []js.Value) interface{} {
	if globalAnalysis == nil {
		return errorJSON("no analysis loaded (call perfAnalyze() first)")
	}
	if len(args) < 1 {
		return errorJSON("perfCityOf requires 1 argument: name")
	}
	return globalAnalysis.CityOf(args[0].String())
}

// exportMapping handles perfExportMapping(); the result feeds perfLoadMapping
// in other workers.
func exportMapping(this js.Value, args []js.Value) interface{} {
	if globalResolver == nil {
		return errorJSON("no name mapping built")
	}
	return engine.SerializeResolver(globalResolver)
}

// loadMapping handles perfLoadMapping(serializedJSON).
func loadMapping(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON("perfLoadMapping requires 1 argument: serialized mapping JSON")
	}
	var err error
	globalResolver, err = engine.DeserializeResolver([]byte(args[0].String()))
	if err != nil {
		return errorJSON(err.Error())
	}
	return `{"ok": true}`
}

// canonicalName handles perfCanonicalName(name) against the loaded mapping.
func canonicalName(this js.Value, args []js.Value) interface{} {
	if globalResolver == nil {
		return errorJSON("name mapping not loaded (call perfLoadMapping() first)")
	}
	if len(args) < 1 {
		return errorJSON("perfCanonicalName requires 1 argument: name")
	}
	return globalResolver.CanonicalName(args[0].String())
}

func main() {
	js.Global().Set("perfAnalyze", js.FuncOf(analyze))
	js.Global().Set("perfFindVariants", js.FuncOf(findVariants))
	js.Global().Set("perfCityOf", js.FuncOf(cityOf))
	js.Global().Set("perfExportMapping", js.FuncOf(exportMapping))
	js.Global().Set("perfLoadMapping", js.FuncOf(loadMapping))
	js.Global().Set("perfCanonicalName", js.FuncOf(canonicalName))

	// Block forever; the WASM module stays alive
	select {}
}
