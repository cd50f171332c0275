package utils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/aarondl/null/v8"
)

// SentFields returns the top-level JSON keys present in a request body.
func SentFields(rawRequestBody []byte) (map[string]json.RawMessage, error) {
	sent := map[string]json.RawMessage{}
	if len(strings.TrimSpace(string(rawRequestBody))) == 0 {
		return sent, nil
	}
	if err := json.Unmarshal(rawRequestBody, &sent); err != nil {
		return nil, err
	}
	return sent, nil
}

// ApplyPatch copies the fields of patchDTO that were present in the raw body
// onto entity, matching struct fields by name. It returns the JSON names that
// were applied.
//
// null.String and null.Float64 fields clear a nullable entity field when the
// client sent JSON null. A plain pointer field sent as null is ignored, so
// required columns cannot be blanked through a patch.
func ApplyPatch(entity interface{}, patchDTO interface{}, rawRequestBody []byte) ([]string, error) {
	sentFields, err := SentFields(rawRequestBody)
	if err != nil {
		return nil, err
	}

	entityValue := reflect.ValueOf(entity).Elem()
	patchDTOValue := reflect.ValueOf(patchDTO)
	if patchDTOValue.Kind() == reflect.Ptr {
		patchDTOValue = patchDTOValue.Elem()
	}

	var applied []string
	for i := 0; i < patchDTOValue.NumField(); i++ {
		patchField := patchDTOValue.Field(i)
		patchFieldType := patchDTOValue.Type().Field(i)
		jsonFieldName := strings.Split(patchFieldType.Tag.Get("json"), ",")[0]
		if jsonFieldName == "" || jsonFieldName == "-" {
			continue
		}

		if _, fieldWasSent := sentFields[jsonFieldName]; !fieldWasSent {
			continue
		}

		entityFieldValue := entityValue.FieldByName(patchFieldType.Name)
		if !entityFieldValue.IsValid() || !entityFieldValue.CanSet() {
			continue
		}

		if setField(entityFieldValue, patchField) {
			applied = append(applied, jsonFieldName)
		}
	}
	return applied, nil
}

func setField(target reflect.Value, patchField reflect.Value) bool {
	targetType := target.Type()

	switch patchValue := patchField.Interface().(type) {
	case null.String:
		if targetType == reflect.TypeOf(new(string)) {
			if patchValue.Valid {
				v := patchValue.String
				target.Set(reflect.ValueOf(&v))
			} else {
				target.Set(reflect.Zero(targetType))
			}
			return true
		}
		if target.Kind() == reflect.String && patchValue.Valid {
			target.SetString(patchValue.String)
			return true
		}

	case null.Float64:
		if targetType == reflect.TypeOf(new(float64)) {
			if patchValue.Valid {
				v := patchValue.Float64
				target.Set(reflect.ValueOf(&v))
			} else {
				target.Set(reflect.Zero(targetType))
			}
			return true
		}
		if target.Kind() == reflect.Float64 && patchValue.Valid {
			target.SetFloat(patchValue.Float64)
			return true
		}

	default:
		if patchField.Kind() != reflect.Ptr || patchField.IsNil() {
			return false
		}
		elem := patchField.Elem()
		switch {
		case elem.Type().AssignableTo(targetType):
			target.Set(elem)
			return true
		case elem.Type().ConvertibleTo(targetType) && elem.Kind() == targetType.Kind():
			target.Set(elem.Convert(targetType))
			return true
		case patchField.Type().AssignableTo(targetType):
			v := reflect.New(elem.Type())
			v.Elem().Set(elem)
			target.Set(v)
			return true
		}
	}
	return false
}
