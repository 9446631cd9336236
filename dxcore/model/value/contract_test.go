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

package value_test

import (
	"dirpx.dev/dxobj/dxcore/model"
	"dirpx.dev/dxobj/dxcore/model/value"
)

// Compile-time checks that every value type satisfies the Model contract.
var (
	_ model.Model = (*value.Id)(nil)
	_ model.Model = (*value.Timestamp)(nil)
	_ model.Model = (*value.Bytes)(nil)
	_ model.Model = (*value.FilePath)(nil)
	_ model.Model = (*value.DirectoryPath)(nil)

	_ model.Comparable[value.Id]        = value.Id{}
	_ model.Comparable[value.Timestamp] = value.Timestamp(0)
	_ model.Comparable[value.Bytes]     = value.Bytes(nil)
)
