// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package polyrank provides bidirectional type inference for a higher-rank, predicative polymorphic type-system
// with extensible records, variants, and effect rows.
//
// Inference follows the ordered-context approach of Dunfield and Krishnaswami: an ordered context of rigid
// type variables, metavariables, and scope markers determines where each metavariable may be solved, so
// skolem escape is detected when a solution is recorded and generalization only needs to collect the
// metavariables dropped from the context after a marker. Types are checked for kind-correctness against a
// parallel kind system with kinds for types, rows, and effects.
//
// # Supported Features
//
//   - Higher-rank polymorphism through annotations on lambdas, let-bindings, and expressions
//   - Explicit type application at annotations
//   - Extensible records and variants with scoped labels
//   - Effect rows on effectful function types, inferred for lambdas from the functions they apply
//   - Kind inference with kinds for types, rows, and effects
//   - Mutually-recursive top-level definitions with optional type signatures
//
// # Links
//
//   - Complete and Easy Bidirectional Typechecking for Higher-Rank Polymorphism (Dunfield and Krishnaswami, 2013): https://arxiv.org/abs/1306.6032
//   - Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//   - Practical type inference for arbitrary-rank types (Peyton Jones, Vytiniotis, Weirich, and Shields, 2007): https://www.microsoft.com/en-us/research/publication/practical-type-inference-for-arbitrary-rank-types/
package polyrank
