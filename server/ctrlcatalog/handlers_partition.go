package ctrlcatalog

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"go.bytecake.dev/pws/partition"
	"go.bytecake.dev/pws/server/ctrlcatalog/params"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

// the multipart field carrying the partition bytes
const partitionField = "file"

func (c *Controller) ServePartitionRead(w http.ResponseWriter, r *http.Request) *spec.Response {
	file, err := c.Partitions.Read(mux.Vars(r)["id"])
	if err != nil {
		return errResponse(r, partitionMessages, err)
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return errResponse(r, partitionMessages, fmt.Errorf("stat partition: %w", err))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, "", stat.ModTime(), file)
	return nil
}

func (c *Controller) ServePartitionWrite(r *http.Request) *spec.Response {
	id := mux.Vars(r)["id"]
	mr, err := r.MultipartReader()
	if err != nil {
		return errResponse(r, partitionMessages, fmt.Errorf("%w: %v", params.ErrBadBody, err))
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return errResponse(r, partitionMessages, fmt.Errorf("%w: no %q field", params.ErrBadBody, partitionField))
		}
		if err != nil {
			return errResponse(r, partitionMessages, fmt.Errorf("%w: %v", params.ErrBadBody, err))
		}
		if part.FormName() != partitionField {
			part.Close()
			continue
		}
		_, err = c.Partitions.Write(id, part)
		part.Close()
		if err != nil {
			return errResponse(r, partitionMessages, err)
		}
		return spec.NewResponse(http.StatusCreated, spec.MsgPartitionWritten)
	}
}

func (c *Controller) ServePartitionRemove(r *http.Request) *spec.Response {
	err := c.Partitions.Delete(mux.Vars(r)["id"])
	if errors.Is(err, partition.ErrNotFound) {
		return spec.NewError(http.StatusGone, spec.MsgPartitionNotFound)
	}
	if err != nil {
		return errResponse(r, partitionMessages, err)
	}
	return spec.NewResponse(http.StatusCreated, spec.MsgPartitionRemoved)
}
