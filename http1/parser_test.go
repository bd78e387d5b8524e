package http1

import (
	"fmt"
	"testing"

	"github.com/packetd/httpwire/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler 记录所有收到的回调 用字符串描述每一次调用 方便在
// 测试里对整个回调序列做一次性断言
type recordingHandler struct {
	BaseHandler
	events  []string
	length  int
	hasLen  bool
}

func (r *recordingHandler) ContentLength() (int, bool) { return r.length, r.hasLen }

func (r *recordingHandler) OnMethod(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("method %q", b))
	return true
}
func (r *recordingHandler) OnURL(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("url %q", b))
	return true
}
func (r *recordingHandler) OnVersion(major, minor uint8) bool {
	r.events = append(r.events, fmt.Sprintf("version %d.%d", major, minor))
	return true
}
func (r *recordingHandler) OnStatusCode(code uint16) bool {
	r.events = append(r.events, fmt.Sprintf("status_code %d", code))
	return true
}
func (r *recordingHandler) OnStatus(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("status %q", b))
	return true
}
func (r *recordingHandler) OnInitialFinished() bool {
	r.events = append(r.events, "initial_finished")
	return true
}
func (r *recordingHandler) OnHeaderName(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("header_name %q", b))
	return true
}
func (r *recordingHandler) OnHeaderValue(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("header_value %q", b))
	return true
}
func (r *recordingHandler) OnHeadersFinished() bool {
	r.events = append(r.events, "headers_finished")
	return true
}
func (r *recordingHandler) OnBodyFinished() bool {
	r.events = append(r.events, "body_finished")
	return true
}
func (r *recordingHandler) OnChunkBegin() bool {
	r.events = append(r.events, "chunk_begin")
	return true
}
func (r *recordingHandler) OnChunkLength(n uint64) bool {
	r.events = append(r.events, fmt.Sprintf("chunk_length %d", n))
	return true
}
func (r *recordingHandler) OnChunkExtensionsFinished() bool {
	r.events = append(r.events, "chunk_extensions_finished")
	return true
}
func (r *recordingHandler) OnChunkData(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("chunk_data %q", b))
	return true
}
func (r *recordingHandler) OnURLEncodedName(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("url_encoded_name %q", b))
	return true
}
func (r *recordingHandler) OnURLEncodedValue(b []byte) bool {
	r.events = append(r.events, fmt.Sprintf("url_encoded_value %q", b))
	return true
}

func TestScenario1MinimalRequest(t *testing.T) {
	input := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	p := NewHead()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, fsm.SuccessFinished, s.Kind)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		`method "GET"`,
		`url "/"`,
		"version 1.1",
		"initial_finished",
		`header_name "host"`,
		`header_value "x"`,
		"headers_finished",
	}, h.events)
}

func TestScenario2ResponseLowercased(t *testing.T) {
	input := []byte("http/1.0 200 OK\r\n\r\n")
	p := NewHead()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"version 1.0",
		"status_code 200",
		`status "OK"`,
		"initial_finished",
		"headers_finished",
	}, h.events)
}

func TestScenario3ChunkedBody(t *testing.T) {
	input := []byte("5\r\nhello\r\n0\r\n\r\n")
	p := NewChunked()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"chunk_begin",
		"chunk_length 5",
		"chunk_extensions_finished",
		`chunk_data "hello"`,
		"chunk_begin",
		"chunk_length 0",
		"chunk_extensions_finished",
		"headers_finished",
		"body_finished",
	}, h.events)
}

func TestScenario4UrlEncodedBody(t *testing.T) {
	p := NewUrlEncoded()
	input := []byte("a=1&b=hi+there")
	p.SetBodyLength(uint64(len(input)))
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		`url_encoded_name "a"`,
		`url_encoded_value "1"`,
		`url_encoded_name "b"`,
		`url_encoded_value "hi"`,
		`url_encoded_value " "`,
		`url_encoded_value "there"`,
		"body_finished",
	}, h.events)
}

func TestScenario6ObsFold(t *testing.T) {
	p := NewHead()
	p.state = StateStripHeaderName
	h := &recordingHandler{}
	_, err := p.Resume(h, []byte("X: a\r\n b\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`header_name "x"`,
		`header_value "a"`,
		`header_value " "`,
		`header_value "b"`,
		"headers_finished",
	}, h.events)
}

func TestEmptySliceReturnsEosZero(t *testing.T) {
	p := NewHead()
	h := &recordingHandler{}
	s, err := p.Resume(h, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.N)
	assert.Empty(t, h.events)
}

func TestRestartabilityAcrossArbitraryPartitions(t *testing.T) {
	input := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	whole := &recordingHandler{}
	pWhole := NewHead()
	_, err := pWhole.Resume(whole, input)
	require.NoError(t, err)

	piecemeal := &recordingHandler{}
	p := NewHead()
	total := 0
	for _, b := range input {
		s, err := p.Resume(piecemeal, []byte{b})
		require.NoError(t, err)
		total += s.N
	}
	assert.Equal(t, len(input), total)
	assert.Equal(t, whole.events, piecemeal.events, "byte-by-byte feeding must match whole-buffer feeding")
}

func TestLoneCrAtEndOfSlice(t *testing.T) {
	p := NewHead()
	p.state = StateStripHeaderName
	h := &recordingHandler{}
	s, err := p.Resume(h, []byte("X: a\r"))
	require.NoError(t, err)
	assert.Equal(t, fsm.SuccessEos, s.Kind)

	s, err = p.Resume(h, []byte("\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`header_name "x"`,
		`header_value "a"`,
		"headers_finished",
	}, h.events)
}

func TestChunkDataOneByteAtATime(t *testing.T) {
	p := NewChunked()
	h := &recordingHandler{}
	_, err := p.Resume(h, []byte("3\r\n"))
	require.NoError(t, err)

	for _, b := range []byte("abc") {
		_, err := p.Resume(h, []byte{b})
		require.NoError(t, err)
	}
	_, err = p.Resume(h, []byte("\r\n0\r\n\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"chunk_begin",
		"chunk_length 3",
		"chunk_extensions_finished",
		`chunk_data "a"`,
		`chunk_data "b"`,
		`chunk_data "c"`,
		"chunk_begin",
		"chunk_length 0",
		"chunk_extensions_finished",
		"headers_finished",
		"body_finished",
	}, h.events)
}

func TestMultipartBody(t *testing.T) {
	p := NewMultipart()
	p.SetBoundary([]byte("BOUNDARY"))
	h := &recordingHandler{}
	h.events = nil

	input := "--BOUNDARY\r\n" +
		"Content-Disposition: form-data\r\n\r\n" +
		"hello--BOUNDARY--\r\n"

	s, err := p.Resume(h, []byte(input))
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
}
