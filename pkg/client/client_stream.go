package client

import (
	"io"
	"net/http"
)

const (
	synthesisContentType = "audio/mpeg"

	streamChunkSize = 8 << 10
)

// persist classifies resp before touching the destination. Error bodies are
// decoded into diagnostics, audio is drained chunk by chunk into the sink.
func persist(resp *http.Response, open sink, progress func(int64)) (int64, error) {
	if resp.StatusCode != http.StatusOK {
		return 0, newServiceError(resp)
	}

	if !hasMediaType(resp.Header.Get("Content-Type"), synthesisContentType) {
		return 0, newProtocolError(resp)
	}

	w, err := open()

	if err != nil {
		return 0, &TransportError{Err: err}
	}

	written, err := drain(w, resp.Body, progress)

	if cerr := w.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return written, &TransportError{Err: err, Written: written}
	}

	return written, nil
}

func drain(dst io.Writer, src io.Reader, progress func(int64)) (int64, error) {
	buf := make([]byte, streamChunkSize)

	var written int64

	for {
		n, err := src.Read(buf)

		if n > 0 {
			m, werr := dst.Write(buf[:n])
			written += int64(m)

			if werr != nil {
				return written, werr
			}

			if m != n {
				return written, io.ErrShortWrite
			}

			if progress != nil {
				progress(written)
			}
		}

		if err == io.EOF {
			return written, nil
		}

		if err != nil {
			return written, err
		}
	}
}
