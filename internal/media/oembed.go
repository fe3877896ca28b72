package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/net/html"
)

var ErrMediaNotEmbeddable = errors.New("media is not embeddable")

// MetadataProvider adapts GetMetadata for injection.
type MetadataProvider struct{}

func NewMetadataProvider() *MetadataProvider {
	return &MetadataProvider{}
}

func (MetadataProvider) Get(mediaId string) (*Metadata, error) {
	return GetMetadata(mediaId)
}

type Metadata struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailUrl string `json:"thumbnail_url"`
}

// GetMetadata confirms a media id resolves to a real video and returns its
// metadata. The oembed endpoint is tried first, the watch page is parsed
// as a fallback for videos with embedding disabled.
func GetMetadata(mediaId string) (*Metadata, error) {
	metadata, err := getWithOembed(mediaId)
	if err != nil {
		if !errors.Is(err, ErrMediaNotEmbeddable) {
			return nil, fmt.Errorf("failed to get metadata with oembed: %w", err)
		}

		metadata, err = getFromPage(mediaId)
		if err != nil {
			return nil, fmt.Errorf("failed to get metadata from page: %w", err)
		}
	}

	return metadata, nil
}

func getWithOembed(mediaId string) (*Metadata, error) {
	url := fmt.Sprintf("https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s", mediaId)
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, ErrMediaNotFound
		case http.StatusUnauthorized:
			return nil, ErrMediaNotEmbeddable
		default:
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	}

	var result Metadata
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func getFromPage(mediaId string) (*Metadata, error) {
	resp, err := http.Get("https://youtu.be/" + mediaId)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Title:        getTitle(doc),
		AuthorName:   getLinkContent(doc),
		ThumbnailUrl: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", mediaId),
	}, nil
}

func getTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := getTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func getLinkContent(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "link" {
		for _, attr := range n.Attr {
			if attr.Key == "itemprop" && attr.Val == "name" {
				for _, attr := range n.Attr {
					if attr.Key == "content" {
						return attr.Val
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if content := getLinkContent(c); content != "" {
			return content
		}
	}
	return ""
}
