package apiclient

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/url"
	"sort"

	"github.com/valyala/fasthttp"
)

// File is the file part of a multipart upload.
type File struct {
	Field    string
	Name     string
	Contents []byte
}

type requestBody func(req *fasthttp.Request) error

func jsonBody(v any) requestBody {
	return func(req *fasthttp.Request) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
		return nil
	}
}

func optionalJSON(v any) requestBody {
	if v == nil {
		return nil
	}
	return jsonBody(v)
}

func formBody(form url.Values) requestBody {
	return func(req *fasthttp.Request) error {
		req.Header.SetContentType("application/x-www-form-urlencoded")
		req.SetBodyString(form.Encode())
		return nil
	}
}

func multipartBody(fields map[string]string, file *File) requestBody {
	return func(req *fasthttp.Request) error {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.WriteField(k, fields[k]); err != nil {
				return err
			}
		}

		if file != nil {
			field := file.Field
			if field == "" {
				field = "file"
			}
			part, err := w.CreateFormFile(field, file.Name)
			if err != nil {
				return err
			}
			if _, err := part.Write(file.Contents); err != nil {
				return err
			}
		}
		if err := w.Close(); err != nil {
			return err
		}

		req.Header.SetContentType(w.FormDataContentType())
		req.SetBodyRaw(buf.Bytes())
		return nil
	}
}
