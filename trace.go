// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parsec

import (
	"go.uber.org/zap"
)

// Trace returns a parser that behaves like p, logging each application of p
// and its outcome to logger at debug level under the given name.
func Trace[T comparable, O any](logger *zap.Logger, name string, p Parser[T, O]) Parser[T, O] {
	logger = logger.With(zap.String("parser", name))
	return Func[T, O](func(in Input[T]) (O, error) {
		if ce := logger.Check(zap.DebugLevel, "enter"); ce != nil {
			ce.Write(posFields(in.Pos())...)
		}

		v, err := p.Parse(in)
		if err != nil {
			if ce := logger.Check(zap.DebugLevel, "fail"); ce != nil {
				ce.Write(append(posFields(in.Pos()), zap.Error(err))...)
			}
		} else if ce := logger.Check(zap.DebugLevel, "ok"); ce != nil {
			ce.Write(append(posFields(in.Pos()), zap.Any("value", v))...)
		}
		return v, err
	})
}

func posFields(pos Position) []zap.Field {
	return []zap.Field{
		zap.Int("offset", pos.Offset),
		zap.Int("line", pos.Line),
		zap.Int("column", pos.Column),
	}
}
