package httputil

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 15 * time.Second}

// SetTimeout overrides the timeout applied to every request issued through
// this package. It must be called before any request is in flight.
func SetTimeout(timeout time.Duration) {
	client.Timeout = timeout
}

// NewHTTPRequest performs an HTTP call and returns the response status code
// along with the raw body.
func NewHTTPRequest(method, url, bodyString string, headers map[string]string) (int, string, error) {
	switch method {
	case http.MethodGet:
		return doRequest(http.MethodGet, url, nil, headers)
	case http.MethodDelete:
		return doRequest(http.MethodDelete, url, nil, headers)
	case http.MethodPost:
		return doRequest(http.MethodPost, url, strings.NewReader(bodyString), headers)
	case http.MethodPut:
		return doRequest(http.MethodPut, url, strings.NewReader(bodyString), headers)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}
}

func doRequest(method, url string, body *strings.Reader, headers map[string]string) (int, string, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, url, body)
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return 0, "", err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rs, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := ioutil.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}
