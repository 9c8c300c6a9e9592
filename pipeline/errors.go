// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderRequired is returned when an inference provider is not provided.
	ErrProviderRequired = errors.New("inference provider required")

	// ErrResolverRequired is returned when a concept resolver is not provided.
	ErrResolverRequired = errors.New("concept resolver required")

	// ErrRecorderRequired is returned when an analytics recorder is not provided.
	ErrRecorderRequired = errors.New("analytics recorder required")

	// ErrInvalidTransition is returned for a journey transition the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid journey transition")
)

// Stage identifies a pipeline stage in failures.
type Stage string

const (
	StageDisambiguation   Stage = "disambiguation"
	StageSynonymExpansion Stage = "synonym_expansion"
	StageConceptResolve   Stage = "concept_resolution"
)

// StageError wraps a failure with the stage it occurred in, so callers can
// resume from that stage on retry instead of restarting the whole journey.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageErr wraps err with its stage, passing nil through unchanged.
func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
