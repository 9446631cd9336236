/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package textutil

import "github.com/iancoleman/strcase"

// ToSnake converts an identifier to snake_case.
//
// It accepts camelCase, PascalCase, kebab-case and SCREAMING_SNAKE input and
// produces an all-lowercase underscore-delimited identifier:
//
//	textutil.ToSnake("camelCase")  // "camel_case"
//	textutil.ToSnake("kebab-case") // "kebab_case"
//	textutil.ToSnake("UPPER_CASE") // "upper_case"
//
// ToSnake is the default mapping from JSON wire keys to model field code
// names. It delegates to github.com/iancoleman/strcase.
func ToSnake(s string) string {
	return strcase.ToSnake(s)
}

// ToCamel converts an identifier to lower camelCase.
//
//	textutil.ToCamel("foo_bar")    // "fooBar"
//	textutil.ToCamel("created_at") // "createdAt"
//	textutil.ToCamel("id")         // "id"
//
// ToCamel is the default alias policy mapping model field code names to
// JSON wire names. It delegates to github.com/iancoleman/strcase.
func ToCamel(s string) string {
	return strcase.ToLowerCamel(s)
}

// ToPascal converts an identifier to upper CamelCase.
//
//	textutil.ToPascal("foo_bar") // "FooBar"
//	textutil.ToPascal("id")      // "Id"
//
// ToPascal backs the pascal-case wire alias policy. It delegates to
// github.com/iancoleman/strcase.
func ToPascal(s string) string {
	return strcase.ToCamel(s)
}
