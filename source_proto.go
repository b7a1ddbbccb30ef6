// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	structpbType     = reflect.TypeOf((*structpb.Struct)(nil))
	protoMessageType = reflect.TypeOf((*proto.Message)(nil)).Elem()
)

func registerProto(r *Registry) {
	r.RegisterSource(structpbType, extractStructpb)
	r.RegisterSource(protoMessageType, extractProtoMessage)
}

// extractStructpb extracts from a google.protobuf.Struct. Values are
// converted through their JSON form unless the requested type is a
// protobuf value type already.
func extractStructpb(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	v, ok := src.(*structpb.Struct).GetFields()[key]
	if !ok {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	if rv := reflect.ValueOf(v); rv.Type().AssignableTo(t) {
		return rv, nil
	}

	data, err := protojson.Marshal(v)
	if err != nil {
		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
	}

	return decodeJSON(key, data, t)
}

// extractProtoMessage extracts a field from any protobuf message. The key
// is the field name or its JSON name. A field that tracks presence and is
// not set is treated as missing.
func extractProtoMessage(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	m := src.(proto.Message).ProtoReflect()
	if !m.IsValid() {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	fields := m.Descriptor().Fields()
	fd := fields.ByName(protoreflect.Name(key))
	if fd == nil {
		fd = fields.ByJSONName(key)
	}
	if fd == nil || (fd.HasPresence() && !m.Has(fd)) {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	v, err := protoFieldValue(fd, m.Get(fd), t)
	if err != nil {
		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
	}

	return v, nil
}

func protoFieldValue(fd protoreflect.FieldDescriptor, v protoreflect.Value, t reflect.Type) (reflect.Value, error) {
	switch {
	case fd.IsMap():
		return reflect.Value{}, fmt.Errorf("map field %s is not supported", fd.FullName())

	case fd.IsList():
		if t.Kind() != reflect.Slice {
			return reflect.Value{}, fmt.Errorf(
				"repeated field %s can't be used as %s", fd.FullName(), t)
		}

		l := v.List()
		result := reflect.MakeSlice(t, l.Len(), l.Len())
		for i := 0; i < l.Len(); i++ {
			ev, err := protoSingularValue(fd, l.Get(i), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			result.Index(i).Set(ev)
		}

		return result, nil
	}

	return protoSingularValue(fd, v, t)
}

func protoSingularValue(fd protoreflect.FieldDescriptor, v protoreflect.Value, t reflect.Type) (reflect.Value, error) {
	var raw interface{}
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		msg := v.Message().Interface()
		if rv, ok := convertValue(reflect.ValueOf(msg), t); ok {
			return rv, nil
		}

		// Anything else is decoded from the message's JSON form.
		data, err := protojson.Marshal(msg)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(t)
		if err := json.Unmarshal(data, ptr.Interface()); err != nil {
			return reflect.Value{}, err
		}

		return ptr.Elem(), nil

	case protoreflect.EnumKind:
		raw = int32(v.Enum())

	default:
		raw = v.Interface()
	}

	if rv, ok := convertValue(reflect.ValueOf(raw), t); ok {
		return rv, nil
	}

	return reflect.Value{}, fmt.Errorf(
		"%s field %s can't be used as %s", fd.Kind(), fd.FullName(), t)
}
