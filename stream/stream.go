// Package stream reads and writes definition sequences as JSON.
//
// The binary surface format is the decoder's business, not the
// validator's; this package is the interchange the tooling actually
// speaks. Every definition is a tagged object keyed by "def", and every
// definition type is a tagged object keyed by "kind".
package stream

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wippyai/module-linking/errors"
	"github.com/wippyai/module-linking/linking"
)

type defJSON struct {
	Type     *typeJSON `json:"type,omitempty"`
	Def      string    `json:"def"`
	Name     string    `json:"name,omitempty"`
	Kind     string    `json:"kind,omitempty"`
	Defs     []defJSON `json:"defs,omitempty"`
	Args     []argJSON `json:"args,omitempty"`
	Module   uint32    `json:"module,omitempty"`
	Instance uint32    `json:"instance,omitempty"`
	Count    uint32    `json:"count,omitempty"`
	Index    uint32    `json:"index,omitempty"`
}

type argJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Index uint32 `json:"index"`
}

type typeJSON struct {
	Max     *uint32             `json:"max,omitempty"`
	Imports map[string]typeJSON `json:"imports,omitempty"`
	Exports map[string]typeJSON `json:"exports,omitempty"`
	Kind    string              `json:"kind"`
	Elem    string              `json:"elem,omitempty"`
	Val     string              `json:"val,omitempty"`
	Params  []string            `json:"params,omitempty"`
	Results []string            `json:"results,omitempty"`
	Min     uint32              `json:"min,omitempty"`
	Mutable bool                `json:"mutable,omitempty"`
}

// Decode reads a JSON definition sequence
func Decode(r io.Reader) ([]linking.Definition, error) {
	var raw []defJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "decode definition stream")
	}
	return decodeDefs(raw)
}

// Encode writes a definition sequence as indented JSON
func Encode(w io.Writer, defs []linking.Definition) error {
	raw, err := encodeDefs(defs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

func decodeDefs(raw []defJSON) ([]linking.Definition, error) {
	defs := make([]linking.Definition, 0, len(raw))
	for i, d := range raw {
		def, err := decodeDef(d)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("def[%d]", i))
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeDef(d defJSON) (linking.Definition, error) {
	switch d.Def {
	case "type":
		ty, err := decodeType(d.Type)
		if err != nil {
			return nil, err
		}
		return linking.TypeDecl{Type: ty}, nil

	case "import":
		ty, err := decodeType(d.Type)
		if err != nil {
			return nil, err
		}
		return linking.ImportDecl{Name: d.Name, Type: ty}, nil

	case "module":
		defs, err := decodeDefs(d.Defs)
		if err != nil {
			return nil, err
		}
		return linking.ModuleDecl{Defs: defs}, nil

	case "instantiate":
		args, err := decodeArgs(d.Args)
		if err != nil {
			return nil, err
		}
		return linking.InstantiateDecl{Module: d.Module, Args: args}, nil

	case "tuple":
		args, err := decodeArgs(d.Args)
		if err != nil {
			return nil, err
		}
		return linking.TupleDecl{Args: args}, nil

	case "alias_export":
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, err
		}
		return linking.ExportAliasDecl{Instance: d.Instance, Name: d.Name, Kind: kind}, nil

	case "alias_outer":
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, err
		}
		return linking.OuterAliasDecl{Count: d.Count, Kind: kind, Index: d.Index}, nil

	case "export":
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, err
		}
		return linking.ExportDecl{Name: d.Name, Kind: kind, Index: d.Index}, nil

	default:
		return nil, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unknown definition tag %q", d.Def))
	}
}

func decodeArgs(raw []argJSON) ([]linking.InstanceArg, error) {
	args := make([]linking.InstanceArg, len(raw))
	for i, a := range raw {
		kind, err := parseKind(a.Kind)
		if err != nil {
			return nil, err
		}
		args[i] = linking.InstanceArg{Name: a.Name, Kind: kind, Index: a.Index}
	}
	return args, nil
}

func decodeType(t *typeJSON) (linking.DefType, error) {
	if t == nil {
		return nil, errors.InvalidData(errors.PhaseDecode, "missing type")
	}
	switch t.Kind {
	case "func":
		params, err := decodeValTypes(t.Params)
		if err != nil {
			return nil, err
		}
		results, err := decodeValTypes(t.Results)
		if err != nil {
			return nil, err
		}
		return linking.FuncType{Params: params, Results: results}, nil

	case "table":
		elem, err := parseRefType(t.Elem)
		if err != nil {
			return nil, err
		}
		return linking.TableType{Elem: elem, Limits: linking.Limits{Min: t.Min, Max: t.Max}}, nil

	case "memory":
		return linking.MemoryType{Limits: linking.Limits{Min: t.Min, Max: t.Max}}, nil

	case "global":
		val, err := parseValType(t.Val)
		if err != nil {
			return nil, err
		}
		return linking.GlobalType{Val: val, Mutable: t.Mutable}, nil

	case "instance":
		exports, err := decodeTypeMap(t.Exports)
		if err != nil {
			return nil, err
		}
		return linking.InstanceType{Exports: exports}, nil

	case "module":
		imports, err := decodeTypeMap(t.Imports)
		if err != nil {
			return nil, err
		}
		exports, err := decodeTypeMap(t.Exports)
		if err != nil {
			return nil, err
		}
		return linking.ModuleType{Imports: imports, Exports: exports}, nil

	default:
		return nil, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unknown type kind %q", t.Kind))
	}
}

func decodeTypeMap(raw map[string]typeJSON) (map[string]linking.DefType, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]linking.DefType, len(raw))
	for name, t := range raw {
		ty, err := decodeType(&t)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		out[name] = ty
	}
	return out, nil
}

func decodeValTypes(raw []string) ([]linking.ValType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]linking.ValType, len(raw))
	for i, s := range raw {
		vt, err := parseValType(s)
		if err != nil {
			return nil, err
		}
		out[i] = vt
	}
	return out, nil
}

func parseValType(s string) (linking.ValType, error) {
	switch s {
	case "i32":
		return linking.ValI32, nil
	case "i64":
		return linking.ValI64, nil
	case "f32":
		return linking.ValF32, nil
	case "f64":
		return linking.ValF64, nil
	default:
		return 0, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unknown value type %q", s))
	}
}

func parseRefType(s string) (linking.RefType, error) {
	switch s {
	case "funcref", "":
		return linking.RefFunc, nil
	case "externref":
		return linking.RefExtern, nil
	default:
		return 0, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unknown reference type %q", s))
	}
}

func parseKind(s string) (linking.Kind, error) {
	for k := linking.KindFunc; k <= linking.KindType; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unknown kind %q", s))
}

func encodeDefs(defs []linking.Definition) ([]defJSON, error) {
	raw := make([]defJSON, 0, len(defs))
	for i, def := range defs {
		d, err := encodeDef(def)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("def[%d]", i))
		}
		raw = append(raw, d)
	}
	return raw, nil
}

func encodeDef(def linking.Definition) (defJSON, error) {
	switch d := def.(type) {
	case linking.TypeDecl:
		ty, err := encodeType(d.Type)
		if err != nil {
			return defJSON{}, err
		}
		return defJSON{Def: "type", Type: ty}, nil

	case linking.ImportDecl:
		ty, err := encodeType(d.Type)
		if err != nil {
			return defJSON{}, err
		}
		return defJSON{Def: "import", Name: d.Name, Type: ty}, nil

	case linking.ModuleDecl:
		defs, err := encodeDefs(d.Defs)
		if err != nil {
			return defJSON{}, err
		}
		return defJSON{Def: "module", Defs: defs}, nil

	case linking.InstantiateDecl:
		return defJSON{Def: "instantiate", Module: d.Module, Args: encodeArgs(d.Args)}, nil

	case linking.TupleDecl:
		return defJSON{Def: "tuple", Args: encodeArgs(d.Args)}, nil

	case linking.ExportAliasDecl:
		return defJSON{Def: "alias_export", Instance: d.Instance, Name: d.Name, Kind: d.Kind.String()}, nil

	case linking.OuterAliasDecl:
		return defJSON{Def: "alias_outer", Count: d.Count, Kind: d.Kind.String(), Index: d.Index}, nil

	case linking.ExportDecl:
		return defJSON{Def: "export", Name: d.Name, Kind: d.Kind.String(), Index: d.Index}, nil

	default:
		return defJSON{}, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unsupported definition %T", def))
	}
}

func encodeArgs(args []linking.InstanceArg) []argJSON {
	if len(args) == 0 {
		return nil
	}
	raw := make([]argJSON, len(args))
	for i, a := range args {
		raw[i] = argJSON{Name: a.Name, Kind: a.Kind.String(), Index: a.Index}
	}
	return raw
}

func encodeType(ty linking.DefType) (*typeJSON, error) {
	switch t := ty.(type) {
	case linking.FuncType:
		return &typeJSON{
			Kind:    "func",
			Params:  encodeValTypes(t.Params),
			Results: encodeValTypes(t.Results),
		}, nil

	case linking.TableType:
		elem := "funcref"
		if t.Elem == linking.RefExtern {
			elem = "externref"
		}
		return &typeJSON{Kind: "table", Elem: elem, Min: t.Limits.Min, Max: t.Limits.Max}, nil

	case linking.MemoryType:
		return &typeJSON{Kind: "memory", Min: t.Limits.Min, Max: t.Limits.Max}, nil

	case linking.GlobalType:
		return &typeJSON{Kind: "global", Val: t.Val.String(), Mutable: t.Mutable}, nil

	case linking.InstanceType:
		exports, err := encodeTypeMap(t.Exports)
		if err != nil {
			return nil, err
		}
		return &typeJSON{Kind: "instance", Exports: exports}, nil

	case linking.ModuleType:
		imports, err := encodeTypeMap(t.Imports)
		if err != nil {
			return nil, err
		}
		exports, err := encodeTypeMap(t.Exports)
		if err != nil {
			return nil, err
		}
		return &typeJSON{Kind: "module", Imports: imports, Exports: exports}, nil

	default:
		return nil, errors.InvalidData(errors.PhaseDecode, fmt.Sprintf("unsupported type %T", ty))
	}
}

func encodeTypeMap(m map[string]linking.DefType) (map[string]typeJSON, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]typeJSON, len(m))
	for name, ty := range m {
		t, err := encodeType(ty)
		if err != nil {
			return nil, errors.WithPath(err, name)
		}
		out[name] = *t
	}
	return out, nil
}

func encodeValTypes(vts []linking.ValType) []string {
	if len(vts) == 0 {
		return nil
	}
	out := make([]string, len(vts))
	for i, vt := range vts {
		out[i] = vt.String()
	}
	return out
}
