// Licensed to the U.S. Geological Survey (USGS) under one or more
// contributor license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. USGS licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package awsutil

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// MockS3Client - mock of the S3 API so asset-store code can be unit tested.
// Expected inputs and queued outputs are consumed in order; any mismatch
// fails loudly with a printed diff of what was expected.
type MockS3Client struct {
	s3iface.S3API

	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput

	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput

	finishTestFailed bool
}

// FinishTest - MUST be called at the end of a unit test/example test.
// Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	err := m.getFinishTestResult()
	if err != nil {
		fmt.Printf("MockS3Client FinishTest: %v\n", err)
		m.finishTestFailed = true
	}
	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	if len(m.ExpListObjectsV2Input) > 0 {
		return errors.New("Test expected more ListObjectsV2 calls")
	}
	if len(m.ExpGetObjectInput) > 0 {
		return errors.New("Test expected more GetObject calls")
	}
	if len(m.ExpPutObjectInput) > 0 {
		return errors.New("Test expected more PutObject calls")
	}
	if len(m.QueuedListObjectsV2Output) > 0 {
		return errors.New("Remaining output ListObjectsV2")
	}
	if len(m.QueuedGetObjectOutput) > 0 {
		return errors.New("Remaining output GetObject")
	}
	if len(m.QueuedPutObjectOutput) > 0 {
		return errors.New("Remaining output PutObject")
	}
	return nil
}

func strOrNil(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	if len(m.ExpListObjectsV2Input) > 0 {
		exp := m.ExpListObjectsV2Input[0]
		m.ExpListObjectsV2Input = m.ExpListObjectsV2Input[1:]
		if strOrNil(exp.Bucket) != strOrNil(input.Bucket) || strOrNil(exp.Prefix) != strOrNil(input.Prefix) {
			return nil, fmt.Errorf("ListObjectsV2 expected %v/%v, got %v/%v",
				strOrNil(exp.Bucket), strOrNil(exp.Prefix), strOrNil(input.Bucket), strOrNil(input.Prefix))
		}
	}

	if len(m.QueuedListObjectsV2Output) <= 0 {
		return nil, errors.New("ListObjectsV2 ran out of queued outputs")
	}
	out := m.QueuedListObjectsV2Output[0]
	m.QueuedListObjectsV2Output = m.QueuedListObjectsV2Output[1:]
	return out, nil
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	if len(m.ExpGetObjectInput) > 0 {
		exp := m.ExpGetObjectInput[0]
		m.ExpGetObjectInput = m.ExpGetObjectInput[1:]
		if strOrNil(exp.Bucket) != strOrNil(input.Bucket) || strOrNil(exp.Key) != strOrNil(input.Key) {
			return nil, fmt.Errorf("GetObject expected %v/%v, got %v/%v",
				strOrNil(exp.Bucket), strOrNil(exp.Key), strOrNil(input.Bucket), strOrNil(input.Key))
		}
	}

	if len(m.QueuedGetObjectOutput) <= 0 {
		return nil, errors.New("GetObject ran out of queued outputs")
	}
	out := m.QueuedGetObjectOutput[0]
	m.QueuedGetObjectOutput = m.QueuedGetObjectOutput[1:]
	return out, nil
}

func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	if len(m.ExpPutObjectInput) > 0 {
		exp := m.ExpPutObjectInput[0]
		m.ExpPutObjectInput = m.ExpPutObjectInput[1:]
		if strOrNil(exp.Bucket) != strOrNil(input.Bucket) || strOrNil(exp.Key) != strOrNil(input.Key) {
			return nil, fmt.Errorf("PutObject expected %v/%v, got %v/%v",
				strOrNil(exp.Bucket), strOrNil(exp.Key), strOrNil(input.Bucket), strOrNil(input.Key))
		}
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New("PutObject ran out of queued outputs")
	}
	out := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]
	return out, nil
}
