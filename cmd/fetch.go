package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/zaba505/gws"
	"go.uber.org/zap"
)

var introQuery = `query IntrospectionQuery {
      __schema {
        types {
          ...FullType
        }
        directives {
          name
          description
          locations
          args {
            ...InputValue
          }
        }
      }
    }

    fragment FullType on __Type {
      kind
      name
      description
      fields(includeDeprecated: true) {
        name
        description
        args {
          ...InputValue
        }
        type {
          ...TypeRef
        }
        isDeprecated
        deprecationReason
      }
      inputFields {
        ...InputValue
      }
      interfaces {
        ...TypeRef
      }
      enumValues(includeDeprecated: true) {
        name
        description
        isDeprecated
        deprecationReason
      }
      possibleTypes {
        ...TypeRef
      }
    }

    fragment InputValue on __InputValue {
      name
      description
      type { ...TypeRef }
      defaultValue
    }

    fragment TypeRef on __Type {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
                ofType {
                  kind
                  name
                  ofType {
                    kind
                    name
                  }
                }
              }
            }
          }
        }
      }
    }`

type gqlReq struct {
	Query string `json:"query"`
}

var query []byte

func init() {
	b, err := json.Marshal(gqlReq{Query: introQuery})
	if err != nil {
		zap.L().Error("unexpected error when encoding introspection query", zap.Error(err))
		return
	}
	query = b
}

type fetchClient struct {
	*http.Client
}

// fetch retrieves a remote doc source. GraphQL endpoints are
// introspected and converted; anything else is fetched as a file.
func fetch(ctx context.Context, client *fetchClient, url *url.URL, headers http.Header) (io.ReadCloser, error) {
	if headers == nil {
		headers = make(http.Header)
	}

	if strings.HasPrefix(url.Scheme, "ws") || path.Base(url.Path) == "graphql" {
		zap.L().Info("fetching types via introspection", zap.String("endpoint", url.String()), zap.Any("headers", headers))
		return client.introspect(ctx, url, headers)
	}

	req, err := http.NewRequest(http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header = headers
	req = req.WithContext(ctx)

	zap.L().Info("fetching remote file", zap.String("name", url.String()), zap.Any("headers", headers))
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("gqldoc: unexpected status when fetching %s: %s", url.String(), resp.Status)
	}
	return resp.Body, nil
}

type noopCloser struct {
	io.Reader
}

func (noopCloser) Close() error { return nil }

func (c *fetchClient) introspect(ctx context.Context, endpoint *url.URL, headers http.Header) (io.ReadCloser, error) {
	var resp *gws.Response

	switch endpoint.Scheme {
	case "http", "https":
		hs := make(http.Header)
		for k, v := range headers {
			for _, s := range v {
				hs.Add(k, s)
			}
		}
		hs.Set("Content-Type", "application/json")

		req, err := http.NewRequest(http.MethodPost, endpoint.String(), bytes.NewReader(query))
		if err != nil {
			return nil, err
		}
		req.Header = hs
		req = req.WithContext(ctx)

		r, err := c.Do(req)
		if err != nil {
			return nil, err
		}
		defer r.Body.Close()

		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}

		resp = new(gws.Response)
		err = json.Unmarshal(b, resp)
		if err != nil {
			return nil, err
		}
	case "ws", "wss":
		conn, err := gws.Dial(ctx, endpoint.String(), gws.WithHeaders(headers))
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		wc := gws.NewClient(conn)

		resp, err = wc.Query(ctx, &gws.Request{Query: introQuery})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("gqldoc: unsupported scheme for remote source: %s", endpoint.Scheme)
	}
	// TODO: Check resp.Errors

	return newConverter(noopCloser{bytes.NewReader(resp.Data)})
}
