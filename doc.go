// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package argbinder binds the parameters of a Go function to values held
// in a keyed data source (a parsed JSON document, a YAML node, a protobuf
// message, ...) and invokes it.
//
// The function's parameter types are discovered with reflection. Each
// parameter is filled either from the source, by extracting a value of the
// parameter's type under some key, or from a value supplied directly by
// the caller. Supplied arguments of type Key are extraction requests; any
// other supplied value is passed through unchanged:
//
//	doc, _ := argbinder.ParseJSON([]byte(`{"name": "Ivan"}`))
//	err := argbinder.Invoke(doc, func(name string, code int) {
//		// name == "Ivan", code == 10
//	}, argbinder.Key("name"), 10)
//
// # Named Values
//
// A parameter can carry its own extraction key in its type using Named.
// Such parameters never consume a supplied argument:
//
//	type idKey struct{}
//
//	func (idKey) Key() string { return "id" }
//
//	func handle(id argbinder.Named[idKey, int], name string) {}
//
//	argbinder.Invoke(doc, handle, argbinder.Key("name"))
//
// A struct parameter that embeds Struct is also bound entirely from the
// source: every exported field is extracted under its name, or under the
// name given by an `argbinder:"key"` tag.
//
// # Extraction
//
// Values are produced by an Extractor. The default is DefaultRegistry,
// which knows how to read map[string]interface{}, json.RawMessage,
// *yaml.Node, *structpb.Struct and any proto.Message. Additional source
// representations and per-type decoders can be registered on a Registry.
//
// # Errors
//
// Binding fails before anything is extracted if the number of supplied
// arguments does not match the number of positional parameters, or if a
// supplied value cannot be used for its parameter. Extraction failures are
// reported as *ErrKeyNotFound or *ErrTypeMismatch; the first failing
// parameter in declaration order is reported and the function is never
// called.
package argbinder
