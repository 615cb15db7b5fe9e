package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ekisa-team/speeddial/internal/speeddial"
	"github.com/ekisa-team/speeddial/mapsafe"
)

// Client calls the SpeedDial service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// AddNumber adds an entry without a contact name.
func (c *Client) AddNumber(ctx context.Context, directory, code, number string) error {
	return c.AddEntry(ctx, directory, speeddial.Entry{Code: code, Number: number})
}

// AddEntry adds an entry.
func (c *Client) AddEntry(ctx context.Context, directory string, entry speeddial.Entry) error {
	in, err := structpb.NewStruct(map[string]any{
		"directory": directory,
		"code":      entry.Code,
		"number":    entry.Number,
		"name":      entry.Name,
	})
	if err != nil {
		return err
	}

	return c.invoke(ctx, MethodAddNumber, in, new(emptypb.Empty))
}

// PhoneNumber looks up an entry.
func (c *Client) PhoneNumber(ctx context.Context, directory, code string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.invoke(ctx, MethodGetPhoneNumber, entryKey(directory, code), out); err != nil {
		return "", err
	}

	return out.GetValue(), nil
}

// RemoveNumber removes an entry.
func (c *Client) RemoveNumber(ctx context.Context, directory, code string) error {
	return c.invoke(ctx, MethodRemoveNumber, entryKey(directory, code), new(emptypb.Empty))
}

// Entries lists a directory sorted by code.
func (c *Client) Entries(ctx context.Context, directory string) ([]speeddial.Entry, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{"directory": structpb.NewStringValue(directory)}}

	out := new(structpb.ListValue)
	if err := c.invoke(ctx, MethodListEntries, in, out); err != nil {
		return nil, err
	}

	entries := make([]speeddial.Entry, 0, len(out.GetValues()))
	for _, v := range out.AsSlice() {
		m, _ := v.(map[string]any)
		entries = append(entries, speeddial.Entry{
			Code:   mapsafe.Get(m, "code", ""),
			Number: mapsafe.Get(m, "number", ""),
			Name:   mapsafe.Get(m, "name", ""),
		})
	}

	return entries, nil
}

// Directories describes every directory.
func (c *Client) Directories(ctx context.Context) ([]speeddial.DirectoryInfo, error) {
	out := new(structpb.ListValue)
	if err := c.invoke(ctx, MethodListDirectories, new(emptypb.Empty), out); err != nil {
		return nil, err
	}

	infos := make([]speeddial.DirectoryInfo, 0, len(out.GetValues()))
	for _, v := range out.AsSlice() {
		m, _ := v.(map[string]any)
		infos = append(infos, speeddial.DirectoryInfo{
			Name:     mapsafe.Get(m, "name", ""),
			Capacity: mapsafe.Get(m, "capacity", 0),
			Size:     mapsafe.Get(m, "size", 0),
		})
	}

	return infos, nil
}

// Dial dials an entry and returns the dialed number.
func (c *Client) Dial(ctx context.Context, directory, code string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.invoke(ctx, MethodDial, entryKey(directory, code), out); err != nil {
		return "", err
	}

	return out.GetValue(), nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out)
}

func entryKey(directory, code string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"directory": structpb.NewStringValue(directory),
		"code":      structpb.NewStringValue(code),
	}}
}
