package server

import (
	"html/template"

	"libshelf/pkg/catalog"
)

// pageStyle is shared by both pages. The flash-success/flash-error and
// btn-success class names are part of the UI contract the browser tests rely on.
const pageStyle = `<style>
    body {
        font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        max-width: 900px;
        margin: 50px auto;
        padding: 20px;
        background: #f5f5f5;
    }
    .container {
        background: white;
        padding: 30px;
        border-radius: 8px;
        box-shadow: 0 2px 4px rgba(0,0,0,0.1);
    }
    h1 { color: #333; margin-bottom: 10px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th, td { text-align: left; padding: 10px; border-bottom: 1px solid #ddd; }
    input[type=text] {
        padding: 8px;
        border: 1px solid #ccc;
        border-radius: 4px;
    }
    button {
        background: #4285f4;
        color: white;
        border: none;
        padding: 10px 20px;
        border-radius: 4px;
        cursor: pointer;
        font-size: 15px;
    }
    button:hover { background: #3367d6; }
    button.btn-success { background: #34a853; }
    button.btn-success:hover { background: #2d9248; }
    .flash-success {
        margin: 20px 0;
        padding: 15px;
        border-radius: 4px;
        background: #d4edda;
        color: #155724;
    }
    .flash-error {
        margin: 20px 0;
        padding: 15px;
        border-radius: 4px;
        background: #f8d7da;
        color: #721c24;
    }
    .field { margin-bottom: 15px; }
    .field label { display: block; margin-bottom: 5px; color: #555; }
</style>`

type catalogPageData struct {
	Books []catalog.Book
	Flash *flash
}

type addBookPageData struct {
	Flash *flash
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Library Catalog</title>
    ` + pageStyle + `
</head>
<body>
    <div class="container">
        <h1>Library Catalog</h1>
        {{with .Flash}}<div class="flash-{{.Kind}}">{{.Message}}</div>{{end}}
        <p><a href="/add_book">Add a new book</a></p>
        <table>
            <thead>
                <tr>
                    <th>Title</th>
                    <th>Author</th>
                    <th>ISBN</th>
                    <th>Availability</th>
                    <th>Borrow</th>
                </tr>
            </thead>
            <tbody>
                {{range .Books}}
                <tr>
                    <td>{{.Title}}</td>
                    <td>{{.Author}}</td>
                    <td>{{.ISBN}}</td>
                    <td>{{.AvailableCopies}} of {{.TotalCopies}} available</td>
                    <td>
                        <form method="post" action="/borrow/{{.ID}}">
                            <input type="text" name="patron_id" placeholder="Patron ID">
                            <button type="submit" class="btn-success">Borrow</button>
                        </form>
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`))

var addBookTemplate = template.Must(template.New("add_book").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Add a Book</title>
    ` + pageStyle + `
</head>
<body>
    <div class="container">
        <h1>Add a Book</h1>
        {{with .Flash}}<div class="flash-{{.Kind}}">{{.Message}}</div>{{end}}
        <form method="post" action="/add_book">
            <div class="field">
                <label for="title">Title</label>
                <input type="text" id="title" name="title">
            </div>
            <div class="field">
                <label for="author">Author</label>
                <input type="text" id="author" name="author">
            </div>
            <div class="field">
                <label for="isbn">ISBN</label>
                <input type="text" id="isbn" name="isbn">
            </div>
            <div class="field">
                <label for="total_copies">Total copies</label>
                <input type="text" id="total_copies" name="total_copies">
            </div>
            <button type="submit">Add Book</button>
        </form>
        <p><a href="/catalog">Back to catalog</a></p>
    </div>
</body>
</html>
`))
