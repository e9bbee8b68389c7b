/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package str

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	var x interface{}
	x = 123
	assert.Equal(t, "123", ToString(x))
	x = "this is test"
	assert.Equal(t, "this is test", ToString(x))
	x = []byte("this is test")
	assert.Equal(t, "this is test", ToString(x))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "-7", ToString(int64(-7)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "boom", ToString(errors.New("boom")))
	assert.Equal(t, "", ToString(nil))

	x = User{Username: "lala", Age: 25}
	assert.Equal(t, "{\"Username\":\"lala\",\"Age\":25,\"Address\":{\"Detail\":\"\"}}", ToString(x))

	x = map[string]string{
		"name": "lala",
	}
	assert.Equal(t, "{\"name\":\"lala\"}", ToString(x))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n "))
	assert.False(t, IsBlank(" a "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "héllo", Truncate("héllo", 10))
	assert.Equal(t, "", Truncate("héllo", 0))
}

func TestConvertDollarPlaceholder(t *testing.T) {
	assert.Equal(t, "select * from t where a=$1 and b=$2", ConvertDollarPlaceholder("select * from t where a=? and b=?", "postgres"))
	assert.Equal(t, "select * from t where a=?", ConvertDollarPlaceholder("select * from t where a=?", "mysql"))
}

func TestToLowerFirst(t *testing.T) {
	assert.Equal(t, "matchCase", ToLowerFirst("MatchCase"))
	assert.Equal(t, "", ToLowerFirst(""))
}

type User struct {
	Username string
	Age      int
	Address  Address
}
type Address struct {
	Detail string
}
